package domain

type PollAudit struct {
	PollID               int64    `json:"poll_id"`
	Capacity             int      `json:"capacity"`
	Participants         int      `json:"participants"`
	SelfEntries          int      `json:"self_entries"`
	Nominations          int      `json:"nominations"`
	Overflow             int      `json:"overflow"`
	DuplicateSelfEntries []string `json:"duplicate_self_entries,omitempty"`
}

func (a PollAudit) Consistent() bool {
	return a.Overflow == 0 && len(a.DuplicateSelfEntries) == 0
}
