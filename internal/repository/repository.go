package repository

import (
	"polarproperty/internal/domain"
)

// SessionStore keeps per-user conversation state.
// Get returns StateIdle for unknown or expired users.
type SessionStore interface {
	Get(userID int64) (domain.UserState, error)
	Set(userID int64, state domain.UserState) error
	Clear(userID int64) error
	// Cleanup drops expired entries and returns how many were removed
	Cleanup() (int, error)
}

// SubmissionRepository defines submission journal operations
type SubmissionRepository interface {
	SaveSubmission(sub *domain.Submission) error
	MarkNotified(id int64) error
	CleanOldSubmissions(days int) error
}
