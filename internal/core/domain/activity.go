package domain

import "time"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ActivityEvent is one entry in a post's audit trail, recorded asynchronously
// after every successful mutation.
type ActivityEvent struct {
	BlogID  string    `json:"blog_id"`
	OwnerID string    `json:"owner_id"`
	Action  string    `json:"action"`
	Title   string    `json:"title"`
	At      time.Time `json:"at"`
}
