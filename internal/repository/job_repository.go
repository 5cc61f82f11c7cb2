package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/suawasthi/job-recom/internal/database"
	"github.com/suawasthi/job-recom/internal/domain/job"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Save(ctx context.Context, p job.Posting) error
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	ListActive(ctx context.Context, limit, offset int) ([]job.Posting, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Save(ctx context.Context, p job.Posting) error {
	if err := p.Validate(); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (
			id, title, company, location, description, remote_policy,
			required_skills, preferred_skills,
			min_experience_years, max_experience_years,
			min_salary, max_salary, job_type, has_benefits, status, updated_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		 ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			remote_policy = EXCLUDED.remote_policy,
			required_skills = EXCLUDED.required_skills,
			preferred_skills = EXCLUDED.preferred_skills,
			min_experience_years = EXCLUDED.min_experience_years,
			max_experience_years = EXCLUDED.max_experience_years,
			min_salary = EXCLUDED.min_salary,
			max_salary = EXCLUDED.max_salary,
			job_type = EXCLUDED.job_type,
			has_benefits = EXCLUDED.has_benefits,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.Title, p.Company, p.Location, p.Description, string(p.RemotePolicy),
		p.RequiredSkills, p.PreferredSkills,
		p.MinExperienceYears, p.MaxExperienceYears,
		p.MinSalary, p.MaxSalary, p.JobType, p.HasBenefits, string(p.Status),
		time.Now().UTC(),
	)
	return err
}

func (r *PostgresJobRepository) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(title,''), COALESCE(company,''), COALESCE(location,''),
			COALESCE(description,''), COALESCE(remote_policy,'none'),
			COALESCE(required_skills,'{}'), COALESCE(preferred_skills,'{}'),
			COALESCE(min_experience_years,0), COALESCE(max_experience_years,0),
			COALESCE(min_salary,0), COALESCE(max_salary,0),
			COALESCE(job_type,''), COALESCE(has_benefits,false), COALESCE(status,'draft')
		 FROM jobs WHERE id = $1`,
		id,
	)
	p, err := scanPosting(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(title,''), COALESCE(company,''), COALESCE(location,''),
			COALESCE(description,''), COALESCE(remote_policy,'none'),
			COALESCE(required_skills,'{}'), COALESCE(preferred_skills,'{}'),
			COALESCE(min_experience_years,0), COALESCE(max_experience_years,0),
			COALESCE(min_salary,0), COALESCE(max_salary,0),
			COALESCE(job_type,''), COALESCE(has_benefits,false), COALESCE(status,'draft')
		 FROM jobs
		 WHERE status = 'active'
		 ORDER BY updated_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPosting(row database.Row) (job.Posting, error) {
	var p job.Posting
	var remote, status string
	err := row.Scan(
		&p.ID, &p.Title, &p.Company, &p.Location, &p.Description, &remote,
		&p.RequiredSkills, &p.PreferredSkills,
		&p.MinExperienceYears, &p.MaxExperienceYears,
		&p.MinSalary, &p.MaxSalary, &p.JobType, &p.HasBenefits, &status,
	)
	if err != nil {
		return job.Posting{}, err
	}
	p.RemotePolicy = job.RemotePolicy(remote)
	p.Status = job.Status(status)
	return p, nil
}
