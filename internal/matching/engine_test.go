package matching

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/job"
	"github.com/suawasthi/job-recom/internal/ontology"
	"github.com/suawasthi/job-recom/internal/weights"
)

type stubSemantic struct {
	sims   map[string]float64
	jobFit float64
	err    error
}

func (s *stubSemantic) SkillSimilarities(_ context.Context, _ string, required []string) (map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sims, nil
}

func (s *stubSemantic) JobFit(_ context.Context, _ candidate.Profile, _ job.Posting) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.jobFit, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "[Matching] ", log.LstdFlags)
}

func newTestEngine(sem SemanticProvider) *Engine {
	return NewEngine(ontology.Default(), weights.NewCalculator(), sem, testLogger())
}

func strongCandidate() candidate.Profile {
	return candidate.Profile{
		ID:                uuid.New(),
		Name:              "Ada",
		Skills:            []string{"python", "machine learning", "sql", "aws"},
		ExperienceYears:   4,
		CurrentRole:       "machine learning engineer",
		Location:          "Austin, TX",
		SalaryExpectation: 100000,
		Narrative:         "ML engineer shipping models to production",
		CareerLevel:       candidate.InferCareerLevel(4),
	}
}

func mlPosting() job.Posting {
	return job.Posting{
		ID:                 uuid.New(),
		Title:              "Machine Learning Engineer",
		Company:            "Acme",
		Location:           "Austin, TX",
		RemotePolicy:       job.RemoteNone,
		RequiredSkills:     []string{"python", "machine learning", "sql"},
		PreferredSkills:    []string{"aws"},
		MinExperienceYears: 3,
		MaxExperienceYears: 5,
		MinSalary:          90000,
		MaxSalary:          130000,
		Status:             job.StatusActive,
	}
}

func TestMatch_StrongCandidateScoresHigh(t *testing.T) {
	sem := &stubSemantic{
		sims:   map[string]float64{"python": 0.9, "machine learning": 0.9, "sql": 0.9},
		jobFit: 0.9,
	}
	e := newTestEngine(sem)
	cand := strongCandidate()
	posting := mlPosting()
	cfg := weights.NewCalculator().Compute(cand, posting, weights.Preferences{}, weights.Neutral(), weights.MarketContext{})

	res, err := e.Match(context.Background(), cand, posting, cfg)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.OverallScore <= 0.8 {
		t.Fatalf("expected overall score > 0.8, got %v", res.OverallScore)
	}
	if len(res.MatchedSkills) != 3 {
		t.Fatalf("expected 3 matched skills, got %v", res.MatchedSkills)
	}
	if len(res.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %v", res.MissingSkills)
	}
	if len(res.Reasons) == 0 || len(res.Reasons) > 4 {
		t.Fatalf("expected 1-4 reasons, got %v", res.Reasons)
	}
	if res.ConfidenceScore <= 0.0 || res.ConfidenceScore > 1.0 {
		t.Fatalf("confidence out of range: %v", res.ConfidenceScore)
	}
}

func TestMatch_WeakCandidateScoresLow(t *testing.T) {
	e := newTestEngine(nil)
	cand := candidate.Profile{
		ID:              uuid.New(),
		Name:            "Sam",
		Skills:          []string{"javascript", "react"},
		ExperienceYears: 1,
		Location:        "Berlin, Germany",
		CareerLevel:     candidate.InferCareerLevel(1),
	}
	posting := job.Posting{
		ID:                 uuid.New(),
		Title:              "Data Scientist",
		Company:            "Acme",
		Location:           "Austin, TX",
		RemotePolicy:       job.RemoteNone,
		RequiredSkills:     []string{"python", "machine learning", "sql"},
		MinExperienceYears: 3,
		MaxExperienceYears: 6,
		Status:             job.StatusActive,
	}
	cfg := weights.NewCalculator().Compute(cand, posting, weights.Preferences{}, weights.Neutral(), weights.MarketContext{})

	res, err := e.Match(context.Background(), cand, posting, cfg)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.OverallScore >= 0.3 {
		t.Fatalf("expected overall score < 0.3, got %v", res.OverallScore)
	}
	if len(res.MissingSkills) != 3 {
		t.Fatalf("expected all required skills missing, got %v", res.MissingSkills)
	}
	if len(res.Concerns) == 0 {
		t.Fatalf("expected concerns for a weak match")
	}
}

func TestMatch_EmptyCandidateDoesNotError(t *testing.T) {
	e := newTestEngine(nil)
	cand := candidate.Profile{ID: uuid.New(), Name: "Blank"}
	posting := mlPosting()
	cfg := weights.Base()

	res, err := e.Match(context.Background(), cand, posting, cfg)
	if err != nil {
		t.Fatalf("Match on empty candidate: %v", err)
	}
	if res.OverallScore < 0.0 {
		t.Fatalf("expected non-negative score, got %v", res.OverallScore)
	}
}

func TestMatch_ValidationErrors(t *testing.T) {
	e := newTestEngine(nil)
	posting := mlPosting()

	bad := strongCandidate()
	bad.ExperienceYears = -1
	if _, err := e.Match(context.Background(), bad, posting, weights.Base()); err == nil {
		t.Fatalf("expected validation error for negative experience")
	}

	badJob := mlPosting()
	badJob.Title = ""
	if _, err := e.Match(context.Background(), strongCandidate(), badJob, weights.Base()); err == nil {
		t.Fatalf("expected validation error for empty title")
	}
}

func TestMatch_SemanticDegradationIsSoft(t *testing.T) {
	e := newTestEngine(&stubSemantic{err: context.DeadlineExceeded})

	res, err := e.Match(context.Background(), strongCandidate(), mlPosting(), weights.Base())
	if err != nil {
		t.Fatalf("degraded semantic backend should not fail the match: %v", err)
	}
	if res.OverallScore <= 0.0 {
		t.Fatalf("expected a usable score without semantic signal, got %v", res.OverallScore)
	}
}

func TestMatchMany_SkipsSortsAndLimits(t *testing.T) {
	e := newTestEngine(nil)
	cand := strongCandidate()

	good := mlPosting()
	weak := job.Posting{
		ID:                 uuid.New(),
		Title:              "Registered Nurse",
		Company:            "MedCorp",
		Location:           "Berlin, Germany",
		RemotePolicy:       job.RemoteNone,
		RequiredSkills:     []string{"patient care", "clinical procedures"},
		MinExperienceYears: 8,
		MaxExperienceYears: 12,
		Status:             job.StatusActive,
	}
	invalid := mlPosting()
	invalid.Title = ""

	results, err := e.MatchMany(context.Background(), cand, []job.Posting{weak, invalid, good}, Options{TopK: 10})
	if err != nil {
		t.Fatalf("MatchMany: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected invalid posting skipped, got %d results", len(results))
	}
	if results[0].JobID != good.ID {
		t.Fatalf("expected strongest match first")
	}
	if results[0].OverallScore < results[1].OverallScore {
		t.Fatalf("results not sorted descending")
	}

	limited, err := e.MatchMany(context.Background(), cand, []job.Posting{weak, good}, Options{TopK: 1})
	if err != nil {
		t.Fatalf("MatchMany: %v", err)
	}
	if len(limited) != 1 || limited[0].JobID != good.ID {
		t.Fatalf("topK should keep only the best result")
	}

	filtered, err := e.MatchMany(context.Background(), cand, []job.Posting{weak, good}, Options{MinScore: 0.99, TopK: 10})
	if err != nil {
		t.Fatalf("MatchMany: %v", err)
	}
	if len(filtered) != 0 {
		t.Fatalf("min-score filter should drop low results, got %d", len(filtered))
	}
}
