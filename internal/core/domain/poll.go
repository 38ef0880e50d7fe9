package domain

// CurrentPollKey identifies the config record pointing at the poll that is
// accepting participants.
const CurrentPollKey = "CurrentPoll"

type Poll struct {
	ID  int64 `json:"id"`
	Max int   `json:"max"`
}
