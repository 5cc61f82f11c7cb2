package job

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusClosed  Status = "closed"
	StatusDraft   Status = "draft"
	StatusExpired Status = "expired"
)

type RemotePolicy string

const (
	RemoteNone   RemotePolicy = "none"
	RemoteHybrid RemotePolicy = "hybrid"
	RemoteFull   RemotePolicy = "full"
)

type Posting struct {
	ID                 uuid.UUID
	Title              string
	Company            string
	Location           string
	Description        string
	RemotePolicy       RemotePolicy
	RequiredSkills     []string
	PreferredSkills    []string
	MinExperienceYears int
	MaxExperienceYears int
	MinSalary          float64
	MaxSalary          float64
	JobType            string // full_time, part_time, contract, freelance
	HasBenefits        bool
	Status             Status
}

func (p Posting) Validate() error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("%w: job id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: job title is required", domain.ErrValidation)
	}
	if p.MinExperienceYears < 0 || p.MaxExperienceYears < 0 {
		return fmt.Errorf("%w: negative experience bound", domain.ErrValidation)
	}
	if p.MaxExperienceYears > 0 && p.MinExperienceYears > p.MaxExperienceYears {
		return fmt.Errorf("%w: min experience exceeds max", domain.ErrValidation)
	}
	if p.MinSalary < 0 || p.MaxSalary < 0 {
		return fmt.Errorf("%w: negative salary bound", domain.ErrValidation)
	}
	if p.MinSalary > 0 && p.MaxSalary > 0 && p.MinSalary > p.MaxSalary {
		return fmt.Errorf("%w: min salary exceeds max", domain.ErrValidation)
	}
	return nil
}

// IsActive reports whether the posting may be matched. Matching must never
// operate on non-active postings; callers filter before scoring.
func (p Posting) IsActive() bool {
	return p.Status == StatusActive
}

func normalizeSet(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
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

func (p Posting) NormalizedRequiredSkills() []string {
	return normalizeSet(p.RequiredSkills)
}

func (p Posting) NormalizedPreferredSkills() []string {
	return normalizeSet(p.PreferredSkills)
}
