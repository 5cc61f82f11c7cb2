package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/repository"
	"github.com/suawasthi/job-recom/internal/retrieval"
)

type CandidateUsecase interface {
	Upsert(ctx context.Context, c candidate.Profile) (candidate.Profile, error)
	Get(ctx context.Context, id uuid.UUID) (candidate.Profile, error)
}

type Candidates struct {
	repo    repository.CandidateRepository
	indexer *retrieval.Service
}

func NewCandidateUsecase(repo repository.CandidateRepository, indexer *retrieval.Service) *Candidates {
	return &Candidates{repo: repo, indexer: indexer}
}

func (u *Candidates) Upsert(ctx context.Context, c candidate.Profile) (candidate.Profile, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CareerLevel == 0 && c.ExperienceYears > 0 {
		c.CareerLevel = candidate.InferCareerLevel(c.ExperienceYears)
	}
	if err := u.repo.Save(ctx, c); err != nil {
		return candidate.Profile{}, err
	}
	if err := u.indexer.IndexCandidate(ctx, c); err != nil {
		return candidate.Profile{}, err
	}
	return c, nil
}

func (u *Candidates) Get(ctx context.Context, id uuid.UUID) (candidate.Profile, error) {
	c, err := u.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return candidate.Profile{}, ErrCandidateNotFound
		}
		return candidate.Profile{}, err
	}
	return c, nil
}
