package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain"
	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/job"
	"github.com/suawasthi/job-recom/internal/domain/match"
	"github.com/suawasthi/job-recom/internal/matching"
	"github.com/suawasthi/job-recom/internal/weights"
)

// MatchCache stores computed match results keyed by (candidate, job). A
// degraded cache reports misses and swallows writes, it never fails a
// retrieval request.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// AdjustmentSource exposes the learned per-user weight multipliers.
type AdjustmentSource interface {
	Adjustments(ctx context.Context, userID uuid.UUID) (weights.Multipliers, error)
}

type ServiceConfig struct {
	// MinScore drops recommendations below this overall score.
	MinScore float64
	// CacheTTL bounds how long a cached match result stays valid.
	CacheTTL time.Duration
	// UseFlatIndex selects the exact inner-product index. When false, or
	// after an index failure, search degrades to a brute-force cosine scan
	// with the same output contract.
	UseFlatIndex bool
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MinScore:     0.6,
		CacheTTL:     10 * time.Minute,
		UseFlatIndex: true,
	}
}

// Service maintains embeddings and per-entity-type vector indexes in front
// of the matching engine. Retrieval embeds the query entity, shortlists
// neighbors, consults the match cache, and only scores cache misses.
type Service struct {
	cfg         ServiceConfig
	embedder    Embedder
	engine      *matching.Engine
	cache       MatchCache
	adjustments AdjustmentSource
	logger      *log.Logger

	mu         sync.RWMutex
	jobs       map[uuid.UUID]job.Posting
	candidates map[uuid.UUID]candidate.Profile
	jobVecs    map[uuid.UUID][]float32
	candVecs   map[uuid.UUID][]float32
	jobIndex   *FlatIPIndex
	candIndex  *FlatIPIndex
}

// NewService wires a retrieval service. adjustments may be nil, in which
// case every user scores with neutral multipliers.
func NewService(cfg ServiceConfig, embedder Embedder, engine *matching.Engine, cache MatchCache, adjustments AdjustmentSource, logger *log.Logger) *Service {
	s := &Service{
		cfg:         cfg,
		embedder:    embedder,
		engine:      engine,
		cache:       cache,
		adjustments: adjustments,
		logger:      logger,
		jobs:        make(map[uuid.UUID]job.Posting),
		candidates:  make(map[uuid.UUID]candidate.Profile),
		jobVecs:     make(map[uuid.UUID][]float32),
		candVecs:    make(map[uuid.UUID][]float32),
	}
	if cfg.UseFlatIndex {
		s.jobIndex = NewFlatIPIndex(embedder.Dimension())
		s.candIndex = NewFlatIPIndex(embedder.Dimension())
	}
	return s
}

// IndexJob embeds and indexes an active posting. Non-active postings are
// removed instead; matching never operates on them. Either way, cached
// results involving the posting are invalidated.
func (s *Service) IndexJob(ctx context.Context, p job.Posting) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.IsActive() {
		return s.RemoveJob(ctx, p.ID)
	}

	vec, err := s.embedder.Embed(ctx, JobText(p))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.jobs[p.ID] = p
	s.jobVecs[p.ID] = vec
	if s.jobIndex != nil {
		if err := s.jobIndex.Upsert(p.ID, vec); err != nil {
			s.logger.Printf("job index degraded, falling back to cosine scan: %v", err)
			s.jobIndex = nil
		}
	}
	s.mu.Unlock()

	s.invalidate(ctx, fmt.Sprintf("match:*:%s", p.ID))
	return nil
}

// IndexCandidate embeds and indexes a candidate profile.
func (s *Service) IndexCandidate(ctx context.Context, c candidate.Profile) error {
	if err := c.Validate(); err != nil {
		return err
	}

	vec, err := s.embedder.Embed(ctx, CandidateText(c))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.candidates[c.ID] = c
	s.candVecs[c.ID] = vec
	if s.candIndex != nil {
		if err := s.candIndex.Upsert(c.ID, vec); err != nil {
			s.logger.Printf("candidate index degraded, falling back to cosine scan: %v", err)
			s.candIndex = nil
		}
	}
	s.mu.Unlock()

	s.invalidate(ctx, fmt.Sprintf("match:%s:*", c.ID))
	return nil
}

func (s *Service) RemoveJob(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.jobs, id)
	delete(s.jobVecs, id)
	if s.jobIndex != nil {
		s.jobIndex.Remove(id)
	}
	s.mu.Unlock()

	s.invalidate(ctx, fmt.Sprintf("match:*:%s", id))
	return nil
}

func (s *Service) RemoveCandidate(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.candidates, id)
	delete(s.candVecs, id)
	if s.candIndex != nil {
		s.candIndex.Remove(id)
	}
	s.mu.Unlock()

	s.invalidate(ctx, fmt.Sprintf("match:%s:*", id))
	return nil
}

// RecommendJobs returns the best-matching active postings for an indexed
// candidate. The shortlist oversamples at twice the limit to compensate for
// downstream filtering.
func (s *Service) RecommendJobs(ctx context.Context, candidateID uuid.UUID, limit int) ([]match.Result, error) {
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	cand, ok := s.candidates[candidateID]
	vec := s.candVecs[candidateID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: candidate %s is not indexed", domain.ErrValidation, candidateID)
	}

	hits := s.searchJobs(vec, 2*limit)
	opts := s.matchOptions(ctx, cand)

	results := make([]match.Result, 0, len(hits))
	misses := make([]job.Posting, 0, len(hits))
	for _, hit := range hits {
		var cached match.Result
		found, err := s.cache.GetJSON(ctx, matchKey(candidateID, hit.ID), &cached)
		if err == nil && found {
			results = append(results, cached)
			continue
		}

		s.mu.RLock()
		posting, ok := s.jobs[hit.ID]
		s.mu.RUnlock()
		if !ok || !posting.IsActive() {
			continue
		}
		misses = append(misses, posting)
	}

	computed, err := s.engine.MatchMany(ctx, cand, misses, opts)
	if err != nil {
		return nil, err
	}
	for _, res := range computed {
		if err := s.cache.SetJSON(ctx, matchKey(res.CandidateID, res.JobID), res, s.cfg.CacheTTL); err != nil {
			s.logger.Printf("cache write failed for %s: %v", matchKey(res.CandidateID, res.JobID), err)
		}
	}
	results = append(results, computed...)

	return rank(results, s.cfg.MinScore, limit), nil
}

// RecommendCandidates returns the best-matching indexed candidates for an
// active posting. Weights are personalized per candidate, so misses are
// scored one candidate at a time.
func (s *Service) RecommendCandidates(ctx context.Context, jobID uuid.UUID, limit int) ([]match.Result, error) {
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	posting, ok := s.jobs[jobID]
	vec := s.jobVecs[jobID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: posting %s is not indexed", domain.ErrValidation, jobID)
	}

	hits := s.searchCandidates(vec, 2*limit)

	results := make([]match.Result, 0, len(hits))
	for _, hit := range hits {
		var cached match.Result
		found, err := s.cache.GetJSON(ctx, matchKey(hit.ID, jobID), &cached)
		if err == nil && found {
			results = append(results, cached)
			continue
		}

		s.mu.RLock()
		cand, ok := s.candidates[hit.ID]
		s.mu.RUnlock()
		if !ok {
			continue
		}

		computed, err := s.engine.MatchMany(ctx, cand, []job.Posting{posting}, s.matchOptions(ctx, cand))
		if err != nil {
			s.logger.Printf("skipping candidate %s: %v", hit.ID, err)
			continue
		}
		for _, res := range computed {
			if err := s.cache.SetJSON(ctx, matchKey(res.CandidateID, res.JobID), res, s.cfg.CacheTTL); err != nil {
				s.logger.Printf("cache write failed for %s: %v", matchKey(res.CandidateID, res.JobID), err)
			}
			results = append(results, res)
		}
	}

	return rank(results, s.cfg.MinScore, limit), nil
}

type snapshot struct {
	SavedAt          time.Time                  `json:"saved_at"`
	Dimension        int                        `json:"dimension"`
	Jobs             []job.Posting              `json:"jobs"`
	Candidates       []candidate.Profile        `json:"candidates"`
	JobVectors       map[uuid.UUID][]float32    `json:"job_vectors"`
	CandidateVectors map[uuid.UUID][]float32    `json:"candidate_vectors"`
}

// SaveSnapshot persists the indexed entities and their vectors so a restart
// does not have to re-embed the corpus.
func (s *Service) SaveSnapshot(path string) error {
	s.mu.RLock()
	snap := snapshot{
		SavedAt:          time.Now().UTC(),
		Dimension:        s.embedder.Dimension(),
		Jobs:             make([]job.Posting, 0, len(s.jobs)),
		Candidates:       make([]candidate.Profile, 0, len(s.candidates)),
		JobVectors:       make(map[uuid.UUID][]float32, len(s.jobVecs)),
		CandidateVectors: make(map[uuid.UUID][]float32, len(s.candVecs)),
	}
	for _, p := range s.jobs {
		snap.Jobs = append(snap.Jobs, p)
	}
	for _, c := range s.candidates {
		snap.Candidates = append(snap.Candidates, c)
	}
	for id, vec := range s.jobVecs {
		snap.JobVectors[id] = vec
	}
	for id, vec := range s.candVecs {
		snap.CandidateVectors[id] = vec
	}
	s.mu.RUnlock()

	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	s.logger.Printf("snapshot saved: %d jobs, %d candidates", len(snap.Jobs), len(snap.Candidates))
	return nil
}

// LoadSnapshot restores a previously saved snapshot. A missing file or a
// snapshot taken under a different embedding dimension starts empty instead
// of failing; the corpus is simply re-embedded as entities arrive.
func (s *Service) LoadSnapshot(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Printf("no snapshot at %s, starting empty", path)
			return nil
		}
		return fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Dimension != s.embedder.Dimension() {
		s.logger.Printf("snapshot dimension %d does not match embedder dimension %d, starting empty", snap.Dimension, s.embedder.Dimension())
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range snap.Jobs {
		vec, ok := snap.JobVectors[p.ID]
		if !ok || !p.IsActive() {
			continue
		}
		s.jobs[p.ID] = p
		s.jobVecs[p.ID] = vec
		if s.jobIndex != nil {
			if err := s.jobIndex.Upsert(p.ID, vec); err != nil {
				s.logger.Printf("job index degraded, falling back to cosine scan: %v", err)
				s.jobIndex = nil
			}
		}
	}
	for _, c := range snap.Candidates {
		vec, ok := snap.CandidateVectors[c.ID]
		if !ok {
			continue
		}
		s.candidates[c.ID] = c
		s.candVecs[c.ID] = vec
		if s.candIndex != nil {
			if err := s.candIndex.Upsert(c.ID, vec); err != nil {
				s.logger.Printf("candidate index degraded, falling back to cosine scan: %v", err)
				s.candIndex = nil
			}
		}
	}
	s.logger.Printf("snapshot loaded: %d jobs, %d candidates", len(s.jobs), len(s.candidates))
	return nil
}

func (s *Service) searchJobs(vec []float32, k int) []Hit {
	s.mu.RLock()
	index := s.jobIndex
	s.mu.RUnlock()
	if index != nil {
		return index.Search(vec, k)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cosineTopK(s.jobVecs, vec, k)
}

func (s *Service) searchCandidates(vec []float32, k int) []Hit {
	s.mu.RLock()
	index := s.candIndex
	s.mu.RUnlock()
	if index != nil {
		return index.Search(vec, k)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cosineTopK(s.candVecs, vec, k)
}

func (s *Service) matchOptions(ctx context.Context, cand candidate.Profile) matching.Options {
	learned := weights.Neutral()
	if s.adjustments != nil {
		mult, err := s.adjustments.Adjustments(ctx, cand.ID)
		if err != nil {
			s.logger.Printf("adjustments unavailable for %s, using neutral: %v", cand.ID, err)
		} else {
			learned = mult
		}
	}
	return matching.Options{
		Preferences: weights.Preferences{
			RemotePreference:  cand.RemotePreference,
			SalarySensitivity: 0.5,
			GrowthFocus:       0.5,
		},
		Learned: learned,
		Market:  weights.DefaultMarketContext(),
	}
}

func (s *Service) invalidate(ctx context.Context, pattern string) {
	if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Printf("cache invalidation failed for %s: %v", pattern, err)
	}
}

func matchKey(candidateID, jobID uuid.UUID) string {
	return fmt.Sprintf("match:%s:%s", candidateID, jobID)
}

func rank(results []match.Result, minScore float64, limit int) []match.Result {
	kept := results[:0]
	for _, r := range results {
		if r.OverallScore >= minScore {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].OverallScore > kept[j].OverallScore
	})
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
