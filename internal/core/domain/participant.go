package domain

// SelfEntry is the stored friend value of a participant nobody nominated.
const SelfEntry = "/"

// Friend is the optional nominator of a participant. The zero value is a
// self-entry.
type Friend struct {
	name string
	set  bool
}

func NoFriend() Friend {
	return Friend{}
}

func FriendNamed(name string) Friend {
	if name == SelfEntry {
		return Friend{}
	}
	return Friend{name: name, set: true}
}

// ParseFriend reads the stored representation back into a Friend.
func ParseFriend(stored string) Friend {
	return FriendNamed(stored)
}

func (f Friend) Name() (string, bool) {
	return f.name, f.set
}

func (f Friend) IsSelfEntry() bool {
	return !f.set
}

// String returns the stored representation.
func (f Friend) String() string {
	if !f.set {
		return SelfEntry
	}
	return f.name
}

type Participant struct {
	Poll   int64
	Added  int64
	Person string
	Friend Friend
}

// SameSelfEntry reports whether p is a self-entry for person.
func (p Participant) SameSelfEntry(person string) bool {
	return p.Person == person && p.Friend.IsSelfEntry()
}
