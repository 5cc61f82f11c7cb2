package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/job"
	"github.com/suawasthi/job-recom/internal/repository"
	"github.com/suawasthi/job-recom/internal/retrieval"
	"github.com/suawasthi/job-recom/internal/ws"
)

type JobUsecase interface {
	Upsert(ctx context.Context, p job.Posting) (job.Posting, error)
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
	ListActive(ctx context.Context, limit, offset int) ([]job.Posting, error)
}

type Jobs struct {
	repo    repository.JobRepository
	indexer *retrieval.Service
}

func NewJobUsecase(repo repository.JobRepository, indexer *retrieval.Service) *Jobs {
	return &Jobs{repo: repo, indexer: indexer}
}

// Upsert persists a posting and keeps the retrieval index in step with it.
// Non-active postings are dropped from the index so they can never be
// matched or recommended.
func (u *Jobs) Upsert(ctx context.Context, p job.Posting) (job.Posting, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if err := u.repo.Save(ctx, p); err != nil {
		return job.Posting{}, err
	}
	if err := u.indexer.IndexJob(ctx, p); err != nil {
		return job.Posting{}, err
	}
	if p.IsActive() {
		ws.NotifyJobIndexed(p.ID, p.Title)
	}
	return p, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	p, err := u.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (u *Jobs) ListActive(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	return u.repo.ListActive(ctx, limit, offset)
}
