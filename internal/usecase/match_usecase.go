package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/match"
	"github.com/suawasthi/job-recom/internal/matching"
	"github.com/suawasthi/job-recom/internal/preference"
	"github.com/suawasthi/job-recom/internal/repository"
	"github.com/suawasthi/job-recom/internal/weights"
	"github.com/suawasthi/job-recom/internal/ws"
)

type MatchUsecase interface {
	MatchOne(ctx context.Context, candidateID, jobID uuid.UUID) (match.Result, error)
	MatchActive(ctx context.Context, candidateID uuid.UUID, topK int) ([]match.Result, error)
}

type Matcher struct {
	candidates repository.CandidateRepository
	jobs       repository.JobRepository
	matches    repository.MatchRepository
	engine     *matching.Engine
	calc       *weights.Calculator
	learner    *preference.Learner
	logger     *log.Logger
}

func NewMatchUsecase(
	candidates repository.CandidateRepository,
	jobs repository.JobRepository,
	matches repository.MatchRepository,
	engine *matching.Engine,
	calc *weights.Calculator,
	learner *preference.Learner,
	logger *log.Logger,
) *Matcher {
	return &Matcher{
		candidates: candidates,
		jobs:       jobs,
		matches:    matches,
		engine:     engine,
		calc:       calc,
		learner:    learner,
		logger:     logger,
	}
}

// MatchOne scores a single (candidate, job) pair on demand and records the
// result. Non-active postings are rejected here; the engine itself never
// re-checks status.
func (u *Matcher) MatchOne(ctx context.Context, candidateID, jobID uuid.UUID) (match.Result, error) {
	cand, err := u.candidates.Get(ctx, candidateID)
	if err != nil {
		return match.Result{}, mapRepoErr(err)
	}
	posting, err := u.jobs.Get(ctx, jobID)
	if err != nil {
		return match.Result{}, mapRepoErr(err)
	}
	if !posting.IsActive() {
		return match.Result{}, ErrJobNotActive
	}

	opts := u.options(ctx, cand.ID, cand.RemotePreference)
	cfg := u.calc.Compute(cand, posting, opts.Preferences, opts.Learned, opts.Market)
	res, err := u.engine.Match(ctx, cand, posting, cfg)
	if err != nil {
		return match.Result{}, err
	}

	if err := u.matches.Upsert(ctx, res); err != nil {
		u.logger.Printf("match upsert failed for %s/%s: %v", candidateID, jobID, err)
	}
	ws.NotifyMatchComputed(res.CandidateID, res.JobID, res.OverallScore)
	return res, nil
}

// MatchActive scores a candidate against every active posting. The active
// filter lives here so the engine batch only ever sees live jobs.
func (u *Matcher) MatchActive(ctx context.Context, candidateID uuid.UUID, topK int) ([]match.Result, error) {
	cand, err := u.candidates.Get(ctx, candidateID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	postings, err := u.jobs.ListActive(ctx, 100, 0)
	if err != nil {
		return nil, err
	}

	opts := u.options(ctx, cand.ID, cand.RemotePreference)
	opts.MinScore = 0.6
	opts.TopK = topK

	results, err := u.engine.MatchMany(ctx, cand, postings, opts)
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		if err := u.matches.Upsert(ctx, res); err != nil {
			u.logger.Printf("match upsert failed for %s/%s: %v", res.CandidateID, res.JobID, err)
		}
	}
	return results, nil
}

func (u *Matcher) options(ctx context.Context, userID uuid.UUID, remotePref float64) matching.Options {
	learned := weights.Neutral()
	if u.learner != nil {
		mult, err := u.learner.Adjustments(ctx, userID)
		if err != nil {
			u.logger.Printf("adjustments unavailable for %s, using neutral: %v", userID, err)
		} else {
			learned = mult
		}
	}
	return matching.Options{
		Preferences: weights.Preferences{
			RemotePreference:  remotePref,
			SalarySensitivity: 0.5,
			GrowthFocus:       0.5,
		},
		Learned: learned,
		Market:  weights.DefaultMarketContext(),
	}
}

func mapRepoErr(err error) error {
	switch err {
	case repository.ErrJobNotFound:
		return ErrJobNotFound
	case repository.ErrCandidateNotFound:
		return ErrCandidateNotFound
	default:
		return err
	}
}
