package pagetoken

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
)

// Cursor is the key of the last participant on a page. Pages are ordered
// by (added, person, friend) within a poll.
type Cursor struct {
	Added  int64  `json:"a"`
	Person string `json:"p"`
	Friend string `json:"f"`
}

func CursorAfter(p domain.Participant) Cursor {
	return Cursor{Added: p.Added, Person: p.Person, Friend: p.Friend.String()}
}

func Encode(c Cursor) string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode returns nil for the empty token, meaning the first page.
func Decode(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid page token: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("invalid page token: %w", err)
	}
	return &c, nil
}
