package weights

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/job"
)

func testCandidate(years int) candidate.Profile {
	return candidate.Profile{
		ID:              uuid.New(),
		Name:            "Test Candidate",
		Skills:          []string{"python", "sql"},
		ExperienceYears: years,
		CurrentRole:     "software engineer",
		Location:        "Austin, TX",
		CareerLevel:     candidate.InferCareerLevel(years),
	}
}

func testPosting(title, company, description string) job.Posting {
	return job.Posting{
		ID:          uuid.New(),
		Title:       title,
		Company:     company,
		Description: description,
		Status:      job.StatusActive,
	}
}

func assertNormalized(t *testing.T, cfg Config) {
	t.Helper()
	if math.Abs(cfg.Sum()-1.0) > 1e-6 {
		t.Fatalf("weights sum to %v, want 1.0: %s", cfg.Sum(), cfg)
	}
	for _, w := range []float64{cfg.Skill, cfg.Experience, cfg.Location, cfg.Salary, cfg.Semantic, cfg.MarketDemand, cfg.CareerGrowth} {
		if w < 0 {
			t.Fatalf("negative weight in %s", cfg)
		}
	}
}

func TestCompute_AlwaysNormalized(t *testing.T) {
	calc := NewCalculator()
	postings := []job.Posting{
		testPosting("Software Engineer", "Acme", "build services"),
		testPosting("Senior Investment Analyst", "BigBank", "banking and trading"),
		testPosting("Nurse Practitioner", "MedCorp", "patient care"),
		testPosting("Growth Hacker", "TinyCo", "series a startup"),
		testPosting("Office Clerk", "Paper Inc", "filing"),
	}
	prefs := []Preferences{
		{},
		{RemotePreference: 0.9},
		{SalarySensitivity: 0.8, GrowthFocus: 0.9},
	}
	for _, p := range postings {
		for _, pref := range prefs {
			for _, years := range []int{0, 2, 5, 10, 20} {
				cfg := calc.Compute(testCandidate(years), p, pref, Neutral(), DefaultMarketContext())
				assertNormalized(t, cfg)
			}
		}
	}
}

func TestDetectIndustry(t *testing.T) {
	cases := []struct {
		posting job.Posting
		want    Industry
	}{
		{testPosting("Software Engineer", "Acme", ""), IndustryTechnology},
		{testPosting("Financial Analyst", "BigBank", "banking"), IndustryFinance},
		{testPosting("Registered Nurse", "MedCorp", "clinical work"), IndustryHealthcare},
		{testPosting("Operations Coordinator", "TinyCo", "early stage startup, series a"), IndustryStartup},
		{testPosting("Account Executive", "MegaCorp", "fortune 500 multinational"), IndustryEnterprise},
		{testPosting("Office Clerk", "Paper Inc", "filing"), IndustryTechnology},
	}
	for _, tc := range cases {
		if got := DetectIndustry(tc.posting); got != tc.want {
			t.Fatalf("DetectIndustry(%q) = %s, want %s", tc.posting.Title, got, tc.want)
		}
	}
}

func TestDetectCareerStage(t *testing.T) {
	cases := []struct {
		title string
		years int
		want  CareerStage
	}{
		{"Senior Software Engineer", 2, StageSenior},
		{"Engineering Manager", 2, StageLead},
		{"CTO", 2, StageExecutive},
		{"Junior Developer", 10, StageEntry},
		{"Software Engineer", 0, StageEntry},
		{"Software Engineer", 2, StageJunior},
		{"Software Engineer", 5, StageMid},
		{"Software Engineer", 10, StageSenior},
		{"Software Engineer", 15, StageLead},
	}
	for _, tc := range cases {
		got := DetectCareerStage(testCandidate(tc.years), testPosting(tc.title, "Acme", ""))
		if got != tc.want {
			t.Fatalf("DetectCareerStage(%q, %d years) = %s, want %s", tc.title, tc.years, got, tc.want)
		}
	}
}

func TestCompute_EntryStageSkewsTowardSkills(t *testing.T) {
	calc := NewCalculator()
	posting := testPosting("Junior Developer", "Acme", "software development")

	cfg := calc.Compute(testCandidate(0), posting, Preferences{}, Neutral(), MarketContext{})
	assertNormalized(t, cfg)

	if cfg.Skill <= cfg.Experience {
		t.Fatalf("entry stage should weight skill above experience: %s", cfg)
	}
	base := ForIndustry(IndustryTechnology).Normalize(Base())
	if cfg.Skill <= base.Skill {
		t.Fatalf("entry stage should boost skill weight above industry base: skill=%v base=%v", cfg.Skill, base.Skill)
	}
}

func TestCompute_RemotePreferenceReducesLocation(t *testing.T) {
	calc := NewCalculator()
	posting := testPosting("Software Engineer", "Acme", "")
	cand := testCandidate(5)

	plain := calc.Compute(cand, posting, Preferences{}, Neutral(), MarketContext{})
	remote := calc.Compute(cand, posting, Preferences{RemotePreference: 0.9}, Neutral(), MarketContext{})

	if remote.Location >= plain.Location {
		t.Fatalf("remote preference should reduce location weight: %v >= %v", remote.Location, plain.Location)
	}
}

func TestCompute_LearnedMultipliers(t *testing.T) {
	calc := NewCalculator()
	posting := testPosting("Software Engineer", "Acme", "")
	cand := testCandidate(5)

	boosted := Neutral()
	boosted.Salary = 2.0
	plain := calc.Compute(cand, posting, Preferences{}, Neutral(), MarketContext{})
	learned := calc.Compute(cand, posting, Preferences{}, boosted, MarketContext{})

	assertNormalized(t, learned)
	if learned.Salary <= plain.Salary {
		t.Fatalf("learned multiplier should boost salary weight: %v <= %v", learned.Salary, plain.Salary)
	}
}

func TestNormalize_ZeroSumFallsBack(t *testing.T) {
	fallback := Base()
	got := (Config{}).Normalize(fallback)
	if got != fallback {
		t.Fatalf("zero-sum normalize should return fallback, got %s", got)
	}
}

func TestCompute_ZeroMultipliersFallBackToIndustryBase(t *testing.T) {
	calc := NewCalculator()
	posting := testPosting("Software Engineer", "Acme", "")

	cfg := calc.Compute(testCandidate(5), posting, Preferences{}, Multipliers{}, MarketContext{})
	if cfg != ForIndustry(IndustryTechnology) {
		t.Fatalf("all-zero multipliers should fall back to the industry base, got %s", cfg)
	}
}
