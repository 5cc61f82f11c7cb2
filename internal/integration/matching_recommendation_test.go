package integration

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/feedback"
	"github.com/suawasthi/job-recom/internal/domain/job"
	"github.com/suawasthi/job-recom/internal/matching"
	"github.com/suawasthi/job-recom/internal/ontology"
	"github.com/suawasthi/job-recom/internal/preference"
	"github.com/suawasthi/job-recom/internal/retrieval"
	"github.com/suawasthi/job-recom/internal/weights"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	parts := strings.SplitN(pattern, "*", 2)
	for key := range m.data {
		if strings.HasPrefix(key, parts[0]) && (len(parts) == 1 || strings.HasSuffix(key, parts[1])) {
			delete(m.data, key)
		}
	}
	return nil
}

type memFeedback struct {
	mu   sync.Mutex
	recs []feedback.Record
}

func (m *memFeedback) Append(_ context.Context, rec feedback.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memFeedback) ListByUser(_ context.Context, userID uuid.UUID) ([]feedback.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]feedback.Record, 0)
	for _, r := range m.recs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memJobs struct {
	jobs map[uuid.UUID]job.Posting
}

func (m *memJobs) Get(_ context.Context, id uuid.UUID) (job.Posting, error) {
	return m.jobs[id], nil
}

type memAdjustments struct {
	mu   sync.Mutex
	data map[uuid.UUID]preference.Adjustment
}

func (m *memAdjustments) Get(_ context.Context, userID uuid.UUID) (preference.Adjustment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	adj, ok := m.data[userID]
	return adj, ok, nil
}

func (m *memAdjustments) Put(_ context.Context, adj preference.Adjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[adj.UserID] = adj
	return nil
}

type memArtifacts struct {
	mu     sync.Mutex
	models map[uuid.UUID]preference.Model
}

func (m *memArtifacts) Save(_ context.Context, model preference.Model) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models[model.UserID] = model
	return nil
}

func (m *memArtifacts) Load(_ context.Context, userID uuid.UUID) (preference.Model, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	model, ok := m.models[userID]
	return model, ok, nil
}

type stack struct {
	graph    *ontology.Graph
	engine   *matching.Engine
	learner  *preference.Learner
	service  *retrieval.Service
	jobs     *memJobs
	cache    *memCache
	embedder retrieval.Embedder
}

func newStack(t *testing.T) *stack {
	t.Helper()
	logger := log.New(os.Stderr, "[Integration] ", 0)

	graph := ontology.Default()
	embedder := retrieval.NewHashEmbedder(128)
	semantic := retrieval.NewSemanticScorer(embedder, graph)
	calc := weights.NewCalculator()
	engine := matching.NewEngine(graph, calc, semantic, logger)

	jobs := &memJobs{jobs: make(map[uuid.UUID]job.Posting)}
	learner := preference.NewLearner(
		preference.DefaultConfig(),
		&memFeedback{},
		jobs,
		&memAdjustments{data: make(map[uuid.UUID]preference.Adjustment)},
		&memArtifacts{models: make(map[uuid.UUID]preference.Model)},
		logger,
	)

	cache := newMemCache()
	service := retrieval.NewService(retrieval.DefaultServiceConfig(), embedder, engine, cache, learner, logger)

	return &stack{
		graph:    graph,
		engine:   engine,
		learner:  learner,
		service:  service,
		jobs:     jobs,
		cache:    cache,
		embedder: embedder,
	}
}

func seedCandidate() candidate.Profile {
	return candidate.Profile{
		ID:                uuid.New(),
		Name:              "Priya Deshmukh",
		Skills:            []string{"go", "postgresql", "docker", "kubernetes"},
		ExperienceYears:   5,
		CurrentRole:       "backend engineer",
		Location:          "Seattle, Washington, USA",
		SalaryExpectation: 120000,
		RemotePreference:  0.7,
		Narrative:         "Ships distributed backend services in go with postgresql and kubernetes.",
		CareerLevel:       candidate.InferCareerLevel(5),
	}
}

func seedPostings() []job.Posting {
	return []job.Posting{
		{
			ID:                 uuid.New(),
			Title:              "Senior Backend Engineer",
			Company:            "Cloudline",
			Location:           "Seattle, Washington, USA",
			Description:        "Build go services backed by postgresql and kubernetes.",
			RemotePolicy:       job.RemoteHybrid,
			RequiredSkills:     []string{"go", "postgresql", "docker"},
			PreferredSkills:    []string{"kubernetes"},
			MinExperienceYears: 3,
			MaxExperienceYears: 7,
			MinSalary:          110000,
			MaxSalary:          150000,
			JobType:            "full_time",
			HasBenefits:        true,
			Status:             job.StatusActive,
		},
		{
			ID:                 uuid.New(),
			Title:              "Embedded Firmware Engineer",
			Company:            "Signal Forge",
			Location:           "Detroit, Michigan, USA",
			Description:        "Low level firmware for automotive control units.",
			RemotePolicy:       job.RemoteNone,
			RequiredSkills:     []string{"c++", "embedded systems"},
			MinExperienceYears: 8,
			MaxExperienceYears: 12,
			MinSalary:          150000,
			MaxSalary:          190000,
			JobType:            "full_time",
			Status:             job.StatusActive,
		},
		{
			ID:                 uuid.New(),
			Title:              "Platform Engineer",
			Company:            "Northwind Systems",
			Location:           "Seattle, Washington, USA",
			Description:        "Operate kubernetes platforms and golang tooling for product teams.",
			RemotePolicy:       job.RemoteFull,
			RequiredSkills:     []string{"kubernetes", "go", "docker"},
			PreferredSkills:    []string{"postgresql"},
			MinExperienceYears: 4,
			MaxExperienceYears: 8,
			MinSalary:          115000,
			MaxSalary:          155000,
			JobType:            "full_time",
			HasBenefits:        true,
			Status:             job.StatusActive,
		},
	}
}

// The full loop: index postings, recommend, leave feedback, verify the
// learner moves the user's multipliers off neutral and recommendations
// still come back ranked.
func TestMatchingAndLearningLoop(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	cand := seedCandidate()
	postings := seedPostings()
	for _, p := range postings {
		s.jobs.jobs[p.ID] = p
		if err := s.service.IndexJob(ctx, p); err != nil {
			t.Fatalf("IndexJob: %v", err)
		}
	}
	if err := s.service.IndexCandidate(ctx, cand); err != nil {
		t.Fatalf("IndexCandidate: %v", err)
	}

	recs, err := s.service.RecommendJobs(ctx, cand.ID, 10)
	if err != nil {
		t.Fatalf("RecommendJobs: %v", err)
	}
	if len(recs) == 0 {
		t.Fatalf("expected recommendations for a well matched candidate")
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].OverallScore > recs[i-1].OverallScore {
			t.Fatalf("recommendations not sorted: %f after %f", recs[i].OverallScore, recs[i-1].OverallScore)
		}
	}
	for _, r := range recs {
		if r.JobID == postings[1].ID {
			t.Fatalf("firmware posting should score below the floor for this candidate")
		}
		if r.OverallScore < 0.6 {
			t.Fatalf("recommendation below floor: %f", r.OverallScore)
		}
	}

	// Four positive signals push the user past the bootstrap floor.
	for i := 0; i < 4; i++ {
		jobID := postings[0].ID
		if i%2 == 1 {
			jobID = postings[2].ID
		}
		rec := feedback.Record{
			ID:        uuid.New(),
			UserID:    cand.ID,
			JobID:     jobID,
			Kind:      feedback.KindRelevant,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.learner.RecordFeedback(ctx, rec); err != nil {
			t.Fatalf("RecordFeedback: %v", err)
		}
	}

	adj, err := s.learner.UpdateAdjustments(ctx, cand.ID)
	if err != nil {
		t.Fatalf("UpdateAdjustments: %v", err)
	}
	if adj.IsNew {
		t.Fatalf("user with %d feedback records still marked new", adj.FeedbackCount)
	}
	if adj.Multipliers.Skill <= 1.0 {
		t.Fatalf("positive-only feedback should boost the skill multiplier, got %f", adj.Multipliers.Skill)
	}

	stats, err := s.learner.Stats(ctx, cand.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 4 || stats.Positive != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// Learned multipliers change the cache key inputs, so a fresh ranking
	// must still serve and stay sorted.
	recs2, err := s.service.RecommendJobs(ctx, cand.ID, 10)
	if err != nil {
		t.Fatalf("RecommendJobs after feedback: %v", err)
	}
	if len(recs2) == 0 {
		t.Fatalf("expected recommendations after feedback")
	}
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	cand := seedCandidate()
	postings := seedPostings()
	for _, p := range postings {
		s.jobs.jobs[p.ID] = p
		if err := s.service.IndexJob(ctx, p); err != nil {
			t.Fatalf("IndexJob: %v", err)
		}
	}
	if err := s.service.IndexCandidate(ctx, cand); err != nil {
		t.Fatalf("IndexCandidate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "index.json")
	if err := s.service.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	restarted := newStack(t)
	for _, p := range postings {
		restarted.jobs.jobs[p.ID] = p
	}
	if err := restarted.service.LoadSnapshot(path); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	recs, err := restarted.service.RecommendJobs(ctx, cand.ID, 10)
	if err != nil {
		t.Fatalf("RecommendJobs after restore: %v", err)
	}
	if len(recs) == 0 {
		t.Fatalf("expected recommendations from restored index")
	}
}
