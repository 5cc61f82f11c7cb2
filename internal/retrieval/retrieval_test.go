package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain"
	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/job"
	"github.com/suawasthi/job-recom/internal/matching"
	"github.com/suawasthi/job-recom/internal/ontology"
	"github.com/suawasthi/job-recom/internal/weights"
)

type memCache struct {
	data     map[string][]byte
	gets     int
	hits     int
	sets     int
	patterns []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.gets++
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	m.hits++
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	parts := strings.SplitN(pattern, "*", 2)
	for key := range m.data {
		if strings.HasPrefix(key, parts[0]) && (len(parts) == 1 || strings.HasSuffix(key, parts[1])) {
			delete(m.data, key)
		}
	}
	return nil
}

type countingEmbedder struct {
	inner Embedder
	calls int
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.inner.Embed(ctx, text)
}

func (c *countingEmbedder) Dimension() int { return c.inner.Dimension() }

type failingEmbedder struct{ dim int }

func (f failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("%w: backend down", domain.ErrDependencyDegraded)
}

func (f failingEmbedder) Dimension() int { return f.dim }

func testLogger() *log.Logger {
	return log.New(io.Discard, "[Retrieval] ", log.LstdFlags)
}

func testEngine() *matching.Engine {
	return matching.NewEngine(ontology.Default(), weights.NewCalculator(), nil, testLogger())
}

func strongCandidate() candidate.Profile {
	return candidate.Profile{
		ID:                uuid.New(),
		Name:              "Ada Laurent",
		Skills:            []string{"python", "machine learning", "sql", "aws"},
		ExperienceYears:   4,
		CurrentRole:       "machine learning engineer",
		Location:          "Austin, Texas, USA",
		SalaryExpectation: 110000,
		RemotePreference:  0.4,
		Narrative:         "Built production recommendation pipelines with python and sql.",
		CareerLevel:       candidate.InferCareerLevel(4),
	}
}

func mlPosting() job.Posting {
	return job.Posting{
		ID:                 uuid.New(),
		Title:              "Machine Learning Engineer",
		Company:            "Vector Labs",
		Location:           "Austin, Texas, USA",
		Description:        "Design and ship machine learning systems with python and sql.",
		RemotePolicy:       job.RemoteNone,
		RequiredSkills:     []string{"python", "machine learning", "sql"},
		PreferredSkills:    []string{"aws"},
		MinExperienceYears: 3,
		MaxExperienceYears: 5,
		MinSalary:          90000,
		MaxSalary:          130000,
		JobType:            "full_time",
		HasBenefits:        true,
		Status:             job.StatusActive,
	}
}

func enterpriseJavaPosting() job.Posting {
	return job.Posting{
		ID:                 uuid.New(),
		Title:              "Enterprise Java Architect",
		Company:            "Fortune Consulting Corporation",
		Location:           "Boston, Massachusetts, USA",
		Description:        "Large scale corporate java platform work.",
		RemotePolicy:       job.RemoteNone,
		RequiredSkills:     []string{"java", "spring boot"},
		MinExperienceYears: 10,
		MaxExperienceYears: 15,
		MinSalary:          150000,
		MaxSalary:          200000,
		JobType:            "full_time",
		Status:             job.StatusActive,
	}
}

func newTestService(t *testing.T) (*Service, *memCache, *countingEmbedder) {
	t.Helper()
	embedder := &countingEmbedder{inner: NewHashEmbedder(64)}
	cache := newMemCache()
	svc := NewService(DefaultServiceConfig(), embedder, testEngine(), cache, nil, testLogger())
	return svc, cache, embedder
}

func TestJobText_FieldOrder(t *testing.T) {
	p := job.Posting{
		Title:           "Data Engineer",
		Company:         "Acme",
		RequiredSkills:  []string{"python", "sql"},
		PreferredSkills: []string{"aws"},
		Description:     "Pipelines.",
	}
	want := "Job Title: Data Engineer | Company: Acme | Required Skills: python, sql | Preferred Skills: aws | Description: Pipelines."
	if got := JobText(p); got != want {
		t.Fatalf("JobText = %q, want %q", got, want)
	}
}

func TestCandidateText_FieldOrder(t *testing.T) {
	c := candidate.Profile{
		Name:            "Sam Ortiz",
		CurrentRole:     "developer",
		Skills:          []string{"go", "sql"},
		ExperienceYears: 3,
		Narrative:       "Backend services.",
	}
	want := "Name: Sam Ortiz | Current Role: developer | Skills: go, sql | Experience: 3 years | Description: Backend services."
	if got := CandidateText(c); got != want {
		t.Fatalf("CandidateText = %q, want %q", got, want)
	}
}

func TestHashEmbedder_DeterministicUnitVectors(t *testing.T) {
	e := NewHashEmbedder(64)
	a1, err := e.Embed(context.Background(), "python machine learning sql")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	a2, _ := e.Embed(context.Background(), "python machine learning sql")
	b, _ := e.Embed(context.Background(), "carpentry woodworking")

	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("embedding not deterministic at index %d", i)
		}
	}

	var norm float64
	for _, v := range a1 {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1.0) > 1e-5 {
		t.Fatalf("squared norm = %f, want 1.0", norm)
	}

	if cosine(a1, b) >= cosine(a1, a2) {
		t.Fatalf("unrelated text should score below identical text")
	}
}

func TestFlatIPIndex_SearchOrdersBySimilarity(t *testing.T) {
	e := NewHashEmbedder(64)
	idx := NewFlatIPIndex(64)

	near, _ := e.Embed(context.Background(), "python data science pipelines")
	far, _ := e.Embed(context.Background(), "forklift warehouse logistics")
	nearID, farID := uuid.New(), uuid.New()
	if err := idx.Upsert(nearID, near); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := idx.Upsert(farID, far); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	query, _ := e.Embed(context.Background(), "python data science")
	hits := idx.Search(query, 2)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].ID != nearID {
		t.Fatalf("nearest hit = %s, want %s", hits[0].ID, nearID)
	}
	if hits[0].Score < hits[1].Score {
		t.Fatalf("hits not sorted descending: %f < %f", hits[0].Score, hits[1].Score)
	}
}

func TestFlatIPIndex_UpsertReplacesAndRemove(t *testing.T) {
	idx := NewFlatIPIndex(2)
	id := uuid.New()

	if err := idx.Upsert(id, []float32{1, 0}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := idx.Upsert(id, []float32{0, 1}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if idx.Len() != 1 {
		t.Fatalf("Len = %d after upsert of same id, want 1", idx.Len())
	}

	hits := idx.Search([]float32{0, 1}, 1)
	if len(hits) != 1 || hits[0].Score < 0.999 {
		t.Fatalf("replaced vector should be the stored one, hits = %v", hits)
	}

	idx.Remove(id)
	if idx.Len() != 0 {
		t.Fatalf("Len = %d after remove, want 0", idx.Len())
	}
}

func TestFlatIPIndex_DimensionMismatch(t *testing.T) {
	idx := NewFlatIPIndex(4)
	if err := idx.Upsert(uuid.New(), []float32{1, 2}); err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
	if hits := idx.Search([]float32{1, 2}, 3); hits != nil {
		t.Fatalf("mismatched query should return nil, got %v", hits)
	}
}

func TestCosineTopK_SameContractAsIndex(t *testing.T) {
	e := NewHashEmbedder(32)
	idx := NewFlatIPIndex(32)
	store := map[uuid.UUID][]float32{}

	for _, text := range []string{"python backend", "java enterprise", "react frontend"} {
		vec, _ := e.Embed(context.Background(), text)
		id := uuid.New()
		if err := idx.Upsert(id, vec); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		store[id] = vec
	}

	query, _ := e.Embed(context.Background(), "python services")
	fromIndex := idx.Search(query, 2)
	fromScan := cosineTopK(store, query, 2)

	if len(fromIndex) != len(fromScan) {
		t.Fatalf("result sizes differ: %d vs %d", len(fromIndex), len(fromScan))
	}
	for i := range fromIndex {
		if fromIndex[i].ID != fromScan[i].ID {
			t.Fatalf("ordering differs at %d: %s vs %s", i, fromIndex[i].ID, fromScan[i].ID)
		}
	}
}

func TestFallbackEmbedder_DegradesToSecondary(t *testing.T) {
	secondary := NewHashEmbedder(16)
	fb := NewFallbackEmbedder(failingEmbedder{dim: 16}, secondary, testLogger())

	got, err := fb.Embed(context.Background(), "python")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	want, _ := secondary.Embed(context.Background(), "python")
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fallback output differs from hash embedder at %d", i)
		}
	}
	if fb.Dimension() != 16 {
		t.Fatalf("Dimension = %d, want 16", fb.Dimension())
	}
}

func TestSemanticScorer_NormalizedKeysAndRange(t *testing.T) {
	scorer := NewSemanticScorer(NewHashEmbedder(64), ontology.Default())

	sims, err := scorer.SkillSimilarities(context.Background(), "Years of python and js work.", []string{"Python", "js"})
	if err != nil {
		t.Fatalf("SkillSimilarities: %v", err)
	}
	if _, ok := sims["python"]; !ok {
		t.Fatalf("expected normalized key python, got %v", sims)
	}
	if _, ok := sims["javascript"]; !ok {
		t.Fatalf("expected alias js resolved to javascript, got %v", sims)
	}
	for skill, sim := range sims {
		if sim < 0 || sim > 1 {
			t.Fatalf("similarity for %s out of range: %f", skill, sim)
		}
	}

	sims, err = scorer.SkillSimilarities(context.Background(), "   ", []string{"python"})
	if err != nil || sims != nil {
		t.Fatalf("blank narrative should yield no signal, got %v, %v", sims, err)
	}
}

func TestSemanticScorer_JobFitBounded(t *testing.T) {
	scorer := NewSemanticScorer(NewHashEmbedder(64), ontology.Default())
	fit, err := scorer.JobFit(context.Background(), strongCandidate(), mlPosting())
	if err != nil {
		t.Fatalf("JobFit: %v", err)
	}
	if fit < 0 || fit > 1 {
		t.Fatalf("JobFit = %f, want [0,1]", fit)
	}
}

func TestRecommendJobs_RanksFiltersAndCaches(t *testing.T) {
	svc, cache, _ := newTestService(t)
	ctx := context.Background()

	cand := strongCandidate()
	good := mlPosting()
	weak := enterpriseJavaPosting()
	closed := mlPosting()
	closed.Status = job.StatusClosed

	if err := svc.IndexCandidate(ctx, cand); err != nil {
		t.Fatalf("IndexCandidate: %v", err)
	}
	for _, p := range []job.Posting{good, weak, closed} {
		if err := svc.IndexJob(ctx, p); err != nil {
			t.Fatalf("IndexJob: %v", err)
		}
	}

	first, err := svc.RecommendJobs(ctx, cand.ID, 5)
	if err != nil {
		t.Fatalf("RecommendJobs: %v", err)
	}
	if len(first) == 0 {
		t.Fatalf("expected at least one recommendation")
	}
	if first[0].JobID != good.ID {
		t.Fatalf("top recommendation = %s, want %s", first[0].JobID, good.ID)
	}
	for _, res := range first {
		if res.JobID == closed.ID {
			t.Fatalf("closed posting must never be recommended")
		}
		if res.OverallScore < svc.cfg.MinScore {
			t.Fatalf("result below min score: %f", res.OverallScore)
		}
	}

	setsAfterFirst := cache.sets
	second, err := svc.RecommendJobs(ctx, cand.ID, 5)
	if err != nil {
		t.Fatalf("RecommendJobs (cached): %v", err)
	}
	if cache.hits == 0 {
		t.Fatalf("second call should hit the cache")
	}
	if cache.sets != setsAfterFirst {
		t.Fatalf("second call recomputed: %d new cache writes", cache.sets-setsAfterFirst)
	}
	if len(second) != len(first) {
		t.Fatalf("cached result count %d, want %d", len(second), len(first))
	}
	for i := range first {
		if !first[i].ComputedAt.Equal(second[i].ComputedAt) || first[i].OverallScore != second[i].OverallScore {
			t.Fatalf("cached result differs at %d", i)
		}
	}
}

func TestRecommendJobs_UnknownCandidate(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.RecommendJobs(context.Background(), uuid.New(), 3); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestIndexJob_ClosedPostingIsRemovedAndInvalidated(t *testing.T) {
	svc, cache, _ := newTestService(t)
	ctx := context.Background()

	cand := strongCandidate()
	posting := mlPosting()
	if err := svc.IndexCandidate(ctx, cand); err != nil {
		t.Fatalf("IndexCandidate: %v", err)
	}
	if err := svc.IndexJob(ctx, posting); err != nil {
		t.Fatalf("IndexJob: %v", err)
	}
	if _, err := svc.RecommendJobs(ctx, cand.ID, 3); err != nil {
		t.Fatalf("RecommendJobs: %v", err)
	}
	if len(cache.data) == 0 {
		t.Fatalf("expected cached match results")
	}

	posting.Status = job.StatusClosed
	if err := svc.IndexJob(ctx, posting); err != nil {
		t.Fatalf("IndexJob (closed): %v", err)
	}

	key := matchKey(cand.ID, posting.ID)
	if _, ok := cache.data[key]; ok {
		t.Fatalf("cache entry %s should be invalidated", key)
	}
	results, err := svc.RecommendJobs(ctx, cand.ID, 3)
	if err != nil {
		t.Fatalf("RecommendJobs after close: %v", err)
	}
	for _, res := range results {
		if res.JobID == posting.ID {
			t.Fatalf("closed posting still recommended")
		}
	}
}

func TestRecommendCandidates_RanksCandidates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	strong := strongCandidate()
	weak := candidate.Profile{
		ID:              uuid.New(),
		Name:            "Kim Doyle",
		Skills:          []string{"carpentry"},
		ExperienceYears: 1,
		CurrentRole:     "apprentice",
		Location:        "Lyon, Auvergne, France",
		CareerLevel:     candidate.InferCareerLevel(1),
	}
	posting := mlPosting()

	if err := svc.IndexCandidate(ctx, strong); err != nil {
		t.Fatalf("IndexCandidate: %v", err)
	}
	if err := svc.IndexCandidate(ctx, weak); err != nil {
		t.Fatalf("IndexCandidate: %v", err)
	}
	if err := svc.IndexJob(ctx, posting); err != nil {
		t.Fatalf("IndexJob: %v", err)
	}

	results, err := svc.RecommendCandidates(ctx, posting.ID, 5)
	if err != nil {
		t.Fatalf("RecommendCandidates: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("expected at least one candidate")
	}
	if results[0].CandidateID != strong.ID {
		t.Fatalf("top candidate = %s, want %s", results[0].CandidateID, strong.ID)
	}
	for _, res := range results {
		if res.CandidateID == weak.ID {
			t.Fatalf("weak candidate should fall below the score floor")
		}
	}
}

func TestSnapshot_RoundTripSkipsReembedding(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cand := strongCandidate()
	posting := mlPosting()
	if err := svc.IndexCandidate(ctx, cand); err != nil {
		t.Fatalf("IndexCandidate: %v", err)
	}
	if err := svc.IndexJob(ctx, posting); err != nil {
		t.Fatalf("IndexJob: %v", err)
	}

	path := filepath.Join(t.TempDir(), "index.json")
	if err := svc.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	embedder := &countingEmbedder{inner: NewHashEmbedder(64)}
	restored := NewService(DefaultServiceConfig(), embedder, testEngine(), newMemCache(), nil, testLogger())
	if err := restored.LoadSnapshot(path); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	results, err := restored.RecommendJobs(ctx, cand.ID, 3)
	if err != nil {
		t.Fatalf("RecommendJobs after restore: %v", err)
	}
	if len(results) == 0 || results[0].JobID != posting.ID {
		t.Fatalf("restored service lost the indexed posting")
	}
	if embedder.calls != 0 {
		t.Fatalf("restore re-embedded %d entities, want 0", embedder.calls)
	}
}

func TestLoadSnapshot_MissingFileStartsEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)
	if err := svc.LoadSnapshot(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
}
