package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/match"
	"github.com/suawasthi/job-recom/internal/repository"
	"github.com/suawasthi/job-recom/internal/retrieval"
)

type RecommendationUsecase interface {
	JobsForCandidate(ctx context.Context, candidateID uuid.UUID, limit int) ([]match.Result, error)
	CandidatesForJob(ctx context.Context, jobID uuid.UUID, limit int) ([]match.Result, error)
}

type Recommender struct {
	retriever *retrieval.Service
	matches   repository.MatchRepository
	logger    *log.Logger
}

func NewRecommendationUsecase(retriever *retrieval.Service, matches repository.MatchRepository, logger *log.Logger) *Recommender {
	return &Recommender{retriever: retriever, matches: matches, logger: logger}
}

func (u *Recommender) JobsForCandidate(ctx context.Context, candidateID uuid.UUID, limit int) ([]match.Result, error) {
	results, err := u.retriever.RecommendJobs(ctx, candidateID, limit)
	if err != nil {
		return nil, err
	}
	u.record(ctx, results)
	return results, nil
}

func (u *Recommender) CandidatesForJob(ctx context.Context, jobID uuid.UUID, limit int) ([]match.Result, error) {
	results, err := u.retriever.RecommendCandidates(ctx, jobID, limit)
	if err != nil {
		return nil, err
	}
	u.record(ctx, results)
	return results, nil
}

func (u *Recommender) record(ctx context.Context, results []match.Result) {
	for _, res := range results {
		if err := u.matches.Upsert(ctx, res); err != nil {
			u.logger.Printf("match upsert failed for %s/%s: %v", res.CandidateID, res.JobID, err)
		}
	}
}
