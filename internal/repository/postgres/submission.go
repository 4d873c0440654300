package postgres

import (
	"database/sql"
	"fmt"

	"polarproperty/internal/domain"
)

// SubmissionRepo implements repository.SubmissionRepository
type SubmissionRepo struct {
	db *sql.DB
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *sql.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// SaveSubmission journals a submission and fills its ID
func (r *SubmissionRepo) SaveSubmission(sub *domain.Submission) error {
	query := `
		INSERT INTO submissions (kind, user_id, first_name, username, text, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(
		query,
		string(sub.Kind), sub.UserID, sub.FirstName, sub.Username, sub.Text, sub.SentAt,
	).Scan(&sub.ID)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// MarkNotified records that the administrator received the submission
func (r *SubmissionRepo) MarkNotified(id int64) error {
	query := `UPDATE submissions SET notified = TRUE WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

// CleanOldSubmissions removes submissions older than the given number of days
func (r *SubmissionRepo) CleanOldSubmissions(days int) error {
	query := `DELETE FROM submissions WHERE created_at < NOW() - ($1 * INTERVAL '1 day')`
	_, err := r.db.Exec(query, days)
	return err
}
