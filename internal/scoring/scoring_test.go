package scoring

import (
	"testing"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/job"
	"github.com/suawasthi/job-recom/internal/ontology"
)

func TestSkill_ExactAndPreferred(t *testing.T) {
	p := DefaultParams()
	g := ontology.Default()

	b := Skill(p, g,
		[]string{"python", "machine learning", "sql", "aws"},
		[]string{"python", "machine learning", "sql"},
		[]string{"aws"},
		nil)

	if len(b.ExactMatches) != 3 {
		t.Fatalf("expected 3 exact matches, got %v", b.ExactMatches)
	}
	if len(b.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %v", b.MissingSkills)
	}
	if len(b.PreferredMatches) != 1 {
		t.Fatalf("expected 1 preferred match, got %v", b.PreferredMatches)
	}
	// 0.6 exact + 0.1 preferred bonus
	if b.Score < 0.69 || b.Score > 0.71 {
		t.Fatalf("unexpected score %v", b.Score)
	}
}

func TestSkill_NormalizationSymmetry(t *testing.T) {
	p := DefaultParams()
	g := ontology.Default()

	a := Skill(p, g, []string{"Python"}, []string{"python "}, nil, nil).Score
	b := Skill(p, g, []string{"python"}, []string{"Python"}, nil, nil).Score
	if a != b {
		t.Fatalf("skill score not symmetric under normalization: %v vs %v", a, b)
	}
}

func TestSkill_TransferableMatch(t *testing.T) {
	p := DefaultParams()
	g := ontology.Default()

	b := Skill(p, g, []string{"mysql"}, []string{"postgresql"}, nil, nil)
	if len(b.TransferableMatches) != 1 {
		t.Fatalf("expected transferable match, got %v", b.TransferableMatches)
	}
	if sim := b.TransferableMatches["postgresql"]; sim != 0.7 {
		t.Fatalf("expected transferability 0.7, got %v", sim)
	}
	if len(b.MissingSkills) != 0 {
		t.Fatalf("transferable skill should not be listed missing: %v", b.MissingSkills)
	}
}

func TestSkill_SemanticMatches(t *testing.T) {
	p := DefaultParams()
	g := ontology.Default()

	sims := map[string]float64{"kubernetes": 0.85, "docker": 0.5}
	b := Skill(p, g, []string{"python"}, []string{"kubernetes", "docker"}, nil, sims)

	if len(b.SemanticMatches) != 1 || b.SemanticMatches[0] != "kubernetes" {
		t.Fatalf("expected semantic match on kubernetes only, got %v", b.SemanticMatches)
	}
}

func TestSkill_EmptyInputs(t *testing.T) {
	p := DefaultParams()
	g := ontology.Default()

	b := Skill(p, g, nil, []string{"python"}, nil, nil)
	if b.Score != 0.0 {
		t.Fatalf("expected 0 for empty candidate skills, got %v", b.Score)
	}
	if len(b.MissingSkills) != 1 {
		t.Fatalf("required skills should all be missing: %v", b.MissingSkills)
	}

	b = Skill(p, g, []string{"python"}, nil, nil, nil)
	if b.Score != 0.0 {
		t.Fatalf("expected 0 for empty required skills, got %v", b.Score)
	}
}

func TestExperience_Boundaries(t *testing.T) {
	p := DefaultParams()

	if got := Experience(p, 3, 3, 5); got != 1.0 {
		t.Fatalf("at min: got %v", got)
	}
	if got := Experience(p, 5, 3, 5); got != 1.0 {
		t.Fatalf("at max: got %v", got)
	}
	if got := Experience(p, 4, 3, 5); got != 1.0 {
		t.Fatalf("inside range: got %v", got)
	}
}

func TestExperience_UnderQualified(t *testing.T) {
	p := DefaultParams()

	if got := Experience(p, 1, 3, 5); got != 0.7 {
		t.Fatalf("2 years under: expected 0.7, got %v", got)
	}
	if got := Experience(p, 0, 10, 12); got != 0.0 {
		t.Fatalf("far under: expected floor 0.0, got %v", got)
	}
}

func TestExperience_OverQualified(t *testing.T) {
	p := DefaultParams()

	if got := Experience(p, 7, 3, 5); got != 0.9 {
		t.Fatalf("2 years over: expected 0.9, got %v", got)
	}
	if got := Experience(p, 25, 1, 3); got != 0.7 {
		t.Fatalf("far over: expected floor 0.7, got %v", got)
	}
}

func TestLocation_Tiers(t *testing.T) {
	p := DefaultParams()

	cases := []struct {
		name      string
		cand, job string
		policy    job.RemotePolicy
		want      float64
	}{
		{"fully remote", "Austin, TX, USA", "New York, NY, USA", job.RemoteFull, 1.0},
		{"same city onsite", "San Francisco, CA", "san francisco, ca", job.RemoteNone, 1.0},
		{"same city ignores suffix", "San Francisco", "San Francisco, CA", job.RemoteNone, 1.0},
		{"hybrid different city", "Oakland, CA", "San Jose, CA", job.RemoteHybrid, 0.8},
		{"same state onsite", "Oakland, CA", "San Jose, CA", job.RemoteNone, 0.6},
		{"same country onsite", "Austin, TX, USA", "Boston, MA, USA", job.RemoteNone, 0.4},
		{"different country floor", "Berlin, BE, Germany", "Austin, TX, USA", job.RemoteNone, 0.3},
		{"empty locations floor", "", "", job.RemoteNone, 0.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Location(p, tc.cand, tc.job, tc.policy)
			if got != tc.want {
				t.Fatalf("Location(%q, %q, %s) = %v, want %v", tc.cand, tc.job, tc.policy, got, tc.want)
			}
		})
	}
}

func TestSalary(t *testing.T) {
	cases := []struct {
		name                       string
		expectation, minS, maxS    float64
		want                       float64
	}{
		{"within range", 100000, 90000, 130000, 1.0},
		{"below min favors employer", 80000, 90000, 130000, 1.0},
		{"no expectation", 0, 90000, 130000, 1.0},
		{"no job range", 100000, 0, 0, 1.0},
		{"slightly above max", 143000, 90000, 130000, 0.85},
		{"far above max floors", 400000, 90000, 130000, 0.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Salary(tc.expectation, tc.minS, tc.maxS)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("Salary(%v, %v, %v) = %v, want %v", tc.expectation, tc.minS, tc.maxS, got, tc.want)
			}
		})
	}
}

func TestSalary_MissingBoundInference(t *testing.T) {
	// Max missing: inferred as min*1.2 = 120000, expectation inside.
	if got := Salary(110000, 100000, 0); got != 1.0 {
		t.Fatalf("expected 1.0 with inferred max, got %v", got)
	}
	// Min missing: inferred as max*0.8, expectation below max.
	if got := Salary(90000, 0, 120000); got != 1.0 {
		t.Fatalf("expected 1.0 with inferred min, got %v", got)
	}
}

func TestCareerGrowth(t *testing.T) {
	p := DefaultParams()

	// Curated path step up: 0.9*0.4 + 0.9*0.3 + 0.9*0.3 = 0.9
	got := CareerGrowth(p, "Data Analyst", "Data Scientist", candidate.LevelJunior, 2, 3, 6)
	if got < 0.89 || got > 0.91 {
		t.Fatalf("curated progression: got %v", got)
	}

	// Pattern progression junior -> senior.
	got = CareerGrowth(p, "Junior Developer Intern", "Senior Developer", candidate.LevelMid, 4, 5, 8)
	if got < 0.85 || got > 0.87 {
		t.Fatalf("pattern progression: got %v", got)
	}

	// Lateral move, same level, inside range.
	got = CareerGrowth(p, "backend developer", "backend developer", candidate.LevelMid, 4, 2, 6)
	if got < 0.68 || got > 0.70 {
		t.Fatalf("lateral move: got %v", got)
	}
}

func TestCareerGrowth_InRange(t *testing.T) {
	p := DefaultParams()
	for years := 0; years <= 30; years += 5 {
		got := CareerGrowth(p, "engineer", "director of engineering", candidate.InferCareerLevel(years), years, 2, 8)
		if got < 0.0 || got > 1.0 {
			t.Fatalf("score out of range for years=%d: %v", years, got)
		}
	}
}

func TestMarketDemand(t *testing.T) {
	// High title, high location, high skills: 0.9 everywhere.
	got := MarketDemand("Senior Data Scientist", "San Francisco, CA", []string{"python", "sql"})
	if got < 0.89 || got > 0.91 {
		t.Fatalf("high demand: got %v", got)
	}

	// Unknown title and location default to 0.5, unknown skills score 0.
	got = MarketDemand("Basket Weaver", "Smallville", []string{"weaving"})
	if got < 0.39 || got > 0.41 {
		t.Fatalf("low demand: got %v", got)
	}

	// Empty skills default to medium demand.
	got = MarketDemand("Basket Weaver", "", nil)
	if got != 0.5 {
		t.Fatalf("defaults: got %v", got)
	}
}
