package candidate

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain"
)

type CareerLevel int

const (
	LevelJunior CareerLevel = iota
	LevelMid
	LevelSenior
)

func (l CareerLevel) String() string {
	switch l {
	case LevelJunior:
		return "junior"
	case LevelMid:
		return "mid"
	case LevelSenior:
		return "senior"
	default:
		return "unknown"
	}
}

// Profile is an immutable snapshot of a candidate at ingestion time.
// Re-ingestion produces a new Profile; prior versions are retained for audit.
type Profile struct {
	ID                uuid.UUID
	Name              string
	Skills            []string
	ExperienceYears   int
	CurrentRole       string
	Location          string
	SalaryExpectation float64
	RemotePreference  float64 // 0..1
	Narrative         string
	CareerLevel       CareerLevel
}

func (p Profile) Validate() error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("%w: candidate id is required", domain.ErrValidation)
	}
	if p.ExperienceYears < 0 {
		return fmt.Errorf("%w: negative experience years", domain.ErrValidation)
	}
	if p.SalaryExpectation < 0 {
		return fmt.Errorf("%w: negative salary expectation", domain.ErrValidation)
	}
	if p.RemotePreference < 0 || p.RemotePreference > 1 {
		return fmt.Errorf("%w: remote preference out of [0,1]", domain.ErrValidation)
	}
	return nil
}

// InferCareerLevel maps raw experience years onto the three-level scale used
// by the career-growth scorer.
func InferCareerLevel(years int) CareerLevel {
	switch {
	case years < 3:
		return LevelJunior
	case years < 7:
		return LevelMid
	default:
		return LevelSenior
	}
}

// NormalizedSkills returns the skill set lowercased and trimmed, with
// duplicates removed. Order follows first appearance.
func (p Profile) NormalizedSkills() []string {
	seen := make(map[string]struct{}, len(p.Skills))
	out := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		n := strings.ToLower(strings.TrimSpace(s))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
