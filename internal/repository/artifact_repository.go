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
)

// PostgresArtifactRepository persists one fitted model artifact per user as
// a jsonb blob. Training overwrites the prior artifact, so re-running a
// user's training is idempotent.
type PostgresArtifactRepository struct {
	db database.DB
}

func NewPostgresArtifactRepository(db database.DB) *PostgresArtifactRepository {
	return &PostgresArtifactRepository{db: db}
}

func (r *PostgresArtifactRepository) Save(ctx context.Context, m preference.Model) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO preference_models (user_id, model, trained_at, sample_count, updated_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id) DO UPDATE SET
			model = EXCLUDED.model,
			trained_at = EXCLUDED.trained_at,
			sample_count = EXCLUDED.sample_count,
			updated_at = EXCLUDED.updated_at`,
		m.UserID, raw, m.TrainedAt, m.SampleCount, time.Now().UTC(),
	)
	return err
}

func (r *PostgresArtifactRepository) Load(ctx context.Context, userID uuid.UUID) (preference.Model, bool, error) {
	row := r.db.QueryRow(ctx, `SELECT model FROM preference_models WHERE user_id = $1`, userID)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return preference.Model{}, false, nil
		}
		return preference.Model{}, false, err
	}

	var m preference.Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return preference.Model{}, false, err
	}
	return m, true, nil
}
