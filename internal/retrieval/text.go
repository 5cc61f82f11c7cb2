package retrieval

import (
	"fmt"
	"strings"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/job"
)

// JobText renders a posting to its canonical embedding text. The field order
// is fixed so the same posting always embeds identically.
func JobText(p job.Posting) string {
	parts := []string{
		"Job Title: " + p.Title,
		"Company: " + p.Company,
		"Required Skills: " + strings.Join(p.RequiredSkills, ", "),
		"Preferred Skills: " + strings.Join(p.PreferredSkills, ", "),
		"Description: " + p.Description,
	}
	return strings.Join(parts, " | ")
}

// CandidateText renders a profile to its canonical embedding text.
func CandidateText(c candidate.Profile) string {
	parts := []string{
		"Name: " + c.Name,
		"Current Role: " + c.CurrentRole,
		"Skills: " + strings.Join(c.Skills, ", "),
		fmt.Sprintf("Experience: %d years", c.ExperienceYears),
		"Description: " + c.Narrative,
	}
	return strings.Join(parts, " | ")
}
