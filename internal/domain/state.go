package domain

import "time"

// UserState represents user's current conversation state
type UserState string

const (
	StateIdle             UserState = "idle"
	StateAwaitingRequest  UserState = "awaiting_request"
	StateAwaitingQuestion UserState = "awaiting_question"
)

// IsAwaiting reports whether the next free text is consumed as a submission
func (s UserState) IsAwaiting() bool {
	return s == StateAwaitingRequest || s == StateAwaitingQuestion
}

// StateData holds a user's state together with the time it was set
type StateData struct {
	State     UserState `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the state is older than ttl. A zero ttl never expires.
func (d StateData) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(d.UpdatedAt) > ttl
}
