package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/database"
	"github.com/suawasthi/job-recom/internal/domain/match"
)

type MatchRepository interface {
	Upsert(ctx context.Context, res match.Result) error
	ListForCandidate(ctx context.Context, candidateID uuid.UUID, limit int) ([]match.Result, error)
}

// PostgresMatchRepository stores the latest computed match per
// (candidate, job) pair. Recomputation is deterministic under the same
// weights, so last-writer-wins is safe.
type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) Upsert(ctx context.Context, res match.Result) error {
	if res.CandidateID == uuid.Nil || res.JobID == uuid.Nil {
		return nil
	}
	detail, err := json.Marshal(res)
	if err != nil {
		return err
	}
	matchedAt := res.ComputedAt
	if matchedAt.IsZero() {
		matchedAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO job_matches (id, candidate_id, job_id, overall_score, confidence_score, detail, matched_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (candidate_id, job_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			confidence_score = EXCLUDED.confidence_score,
			detail = EXCLUDED.detail,
			matched_at = EXCLUDED.matched_at`,
		uuid.New(), res.CandidateID, res.JobID,
		res.OverallScore, res.ConfidenceScore, detail, matchedAt,
	)
	return err
}

func (r *PostgresMatchRepository) ListForCandidate(ctx context.Context, candidateID uuid.UUID, limit int) ([]match.Result, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT detail FROM job_matches
		 WHERE candidate_id = $1
		 ORDER BY overall_score DESC
		 LIMIT $2`,
		candidateID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Result, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var res match.Result
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
