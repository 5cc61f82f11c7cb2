package match

import (
	"time"

	"github.com/google/uuid"
)

// ComponentScores holds the six bounded [0,1] sub-scores feeding the
// overall match score.
type ComponentScores struct {
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Location     float64 `json:"location"`
	Salary       float64 `json:"salary"`
	CareerGrowth float64 `json:"career_growth"`
	MarketDemand float64 `json:"market_demand"`
}

// Result is the outcome of scoring one (candidate, job) pair. OverallScore
// is a convex combination of the component scores under the active weight
// configuration.
type Result struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`

	OverallScore    float64         `json:"overall_score"`
	ConfidenceScore float64         `json:"confidence_score"`
	Components      ComponentScores `json:"components"`

	MatchedSkills      []string `json:"matched_skills"`
	MissingSkills      []string `json:"missing_skills"`
	TransferableSkills []string `json:"transferable_skills"`

	Reasons  []string `json:"reasons"`
	Concerns []string `json:"concerns"`

	ComputedAt time.Time `json:"computed_at"`
}
