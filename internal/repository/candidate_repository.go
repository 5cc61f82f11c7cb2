package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/suawasthi/job-recom/internal/database"
	"github.com/suawasthi/job-recom/internal/domain/candidate"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateRepository interface {
	Save(ctx context.Context, c candidate.Profile) error
	Get(ctx context.Context, id uuid.UUID) (candidate.Profile, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) Save(ctx context.Context, c candidate.Profile) error {
	if err := c.Validate(); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO candidates (
			id, name, skills, experience_years, current_role, location,
			salary_expectation, remote_preference, narrative, career_level, updated_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			skills = EXCLUDED.skills,
			experience_years = EXCLUDED.experience_years,
			current_role = EXCLUDED.current_role,
			location = EXCLUDED.location,
			salary_expectation = EXCLUDED.salary_expectation,
			remote_preference = EXCLUDED.remote_preference,
			narrative = EXCLUDED.narrative,
			career_level = EXCLUDED.career_level,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.Name, c.Skills, c.ExperienceYears, c.CurrentRole, c.Location,
		c.SalaryExpectation, c.RemotePreference, c.Narrative, int(c.CareerLevel),
		time.Now().UTC(),
	)
	return err
}

func (r *PostgresCandidateRepository) Get(ctx context.Context, id uuid.UUID) (candidate.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(name,''), COALESCE(skills,'{}'), COALESCE(experience_years,0),
			COALESCE(current_role,''), COALESCE(location,''),
			COALESCE(salary_expectation,0), COALESCE(remote_preference,0),
			COALESCE(narrative,''), COALESCE(career_level,0)
		 FROM candidates WHERE id = $1`,
		id,
	)

	var c candidate.Profile
	var level int
	err := row.Scan(
		&c.ID, &c.Name, &c.Skills, &c.ExperienceYears,
		&c.CurrentRole, &c.Location,
		&c.SalaryExpectation, &c.RemotePreference,
		&c.Narrative, &level,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return candidate.Profile{}, ErrCandidateNotFound
		}
		return candidate.Profile{}, err
	}
	c.CareerLevel = candidate.CareerLevel(level)
	return c, nil
}
