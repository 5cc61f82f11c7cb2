package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/database"
	"github.com/suawasthi/job-recom/internal/domain/feedback"
)

// PostgresFeedbackRepository is the append-only feedback log backing the
// preference learner.
type PostgresFeedbackRepository struct {
	db database.DB
}

func NewPostgresFeedbackRepository(db database.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

func (r *PostgresFeedbackRepository) Append(ctx context.Context, rec feedback.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO feedback_events (id, user_id, job_id, kind, note, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		rec.ID, rec.UserID, rec.JobID, string(rec.Kind), rec.Note, rec.CreatedAt,
	)
	return err
}

func (r *PostgresFeedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]feedback.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, job_id, kind, COALESCE(note,''), created_at
		 FROM feedback_events
		 WHERE user_id = $1
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feedback.Record, 0)
	for rows.Next() {
		var rec feedback.Record
		var kind string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.JobID, &kind, &rec.Note, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Kind = feedback.Kind(kind)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListUserIDs returns every user that has left at least one feedback
// record. The trainer walks this set on each sweep.
func (r *PostgresFeedbackRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT user_id FROM feedback_events`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
