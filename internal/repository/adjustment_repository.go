package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/suawasthi/job-recom/internal/database"
	"github.com/suawasthi/job-recom/internal/preference"
	"github.com/suawasthi/job-recom/internal/weights"
)

// PostgresAdjustmentRepository keeps one weight-adjustment row per user.
// Multipliers go into a jsonb column so adding a component does not need a
// migration.
type PostgresAdjustmentRepository struct {
	db database.DB
}

func NewPostgresAdjustmentRepository(db database.DB) *PostgresAdjustmentRepository {
	return &PostgresAdjustmentRepository{db: db}
}

func (r *PostgresAdjustmentRepository) Get(ctx context.Context, userID uuid.UUID) (preference.Adjustment, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, multipliers, feedback_count, learning_rate, is_new, updated_at
		 FROM weight_adjustments WHERE user_id = $1`,
		userID,
	)

	var adj preference.Adjustment
	var raw []byte
	err := row.Scan(&adj.UserID, &raw, &adj.FeedbackCount, &adj.LearningRate, &adj.IsNew, &adj.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return preference.Adjustment{}, false, nil
		}
		return preference.Adjustment{}, false, err
	}

	adj.Multipliers = weights.Neutral()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &adj.Multipliers); err != nil {
			return preference.Adjustment{}, false, err
		}
	}
	return adj, true, nil
}

func (r *PostgresAdjustmentRepository) Put(ctx context.Context, adj preference.Adjustment) error {
	raw, err := json.Marshal(adj.Multipliers)
	if err != nil {
		return err
	}
	if adj.UpdatedAt.IsZero() {
		adj.UpdatedAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO weight_adjustments (user_id, multipliers, feedback_count, learning_rate, is_new, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (user_id) DO UPDATE SET
			multipliers = EXCLUDED.multipliers,
			feedback_count = EXCLUDED.feedback_count,
			learning_rate = EXCLUDED.learning_rate,
			is_new = EXCLUDED.is_new,
			updated_at = EXCLUDED.updated_at`,
		adj.UserID, raw, adj.FeedbackCount, adj.LearningRate, adj.IsNew, adj.UpdatedAt,
	)
	return err
}
