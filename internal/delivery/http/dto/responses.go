package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/match"
	"github.com/suawasthi/job-recom/internal/preference"
	"github.com/suawasthi/job-recom/internal/usecase"
	"github.com/suawasthi/job-recom/internal/weights"
)

type ComponentScoresResponse struct {
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Location     float64 `json:"location"`
	Salary       float64 `json:"salary"`
	CareerGrowth float64 `json:"career_growth"`
	MarketDemand float64 `json:"market_demand"`
}

type MatchResponse struct {
	CandidateID        uuid.UUID               `json:"candidate_id"`
	JobID              uuid.UUID               `json:"job_id"`
	OverallScore       float64                 `json:"overall_score"`
	ConfidenceScore    float64                 `json:"confidence_score"`
	Components         ComponentScoresResponse `json:"components"`
	MatchedSkills      []string                `json:"matched_skills"`
	MissingSkills      []string                `json:"missing_skills"`
	TransferableSkills []string                `json:"transferable_skills"`
	Reasons            []string                `json:"reasons"`
	Concerns           []string                `json:"concerns"`
	ComputedAt         time.Time               `json:"computed_at"`
}

func FromMatchResult(res match.Result) MatchResponse {
	return MatchResponse{
		CandidateID:     res.CandidateID,
		JobID:           res.JobID,
		OverallScore:    res.OverallScore,
		ConfidenceScore: res.ConfidenceScore,
		Components: ComponentScoresResponse{
			Skill:        res.Components.Skill,
			Experience:   res.Components.Experience,
			Location:     res.Components.Location,
			Salary:       res.Components.Salary,
			CareerGrowth: res.Components.CareerGrowth,
			MarketDemand: res.Components.MarketDemand,
		},
		MatchedSkills:      emptyIfNil(res.MatchedSkills),
		MissingSkills:      emptyIfNil(res.MissingSkills),
		TransferableSkills: emptyIfNil(res.TransferableSkills),
		Reasons:            emptyIfNil(res.Reasons),
		Concerns:           emptyIfNil(res.Concerns),
		ComputedAt:         res.ComputedAt,
	}
}

func FromMatchResults(results []match.Result) []MatchResponse {
	out := make([]MatchResponse, 0, len(results))
	for _, res := range results {
		out = append(out, FromMatchResult(res))
	}
	return out
}

type FeedbackStatsResponse struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

type AdjustmentResponse struct {
	UserID      uuid.UUID             `json:"user_id"`
	Multipliers weights.Multipliers   `json:"multipliers"`
	Stats       FeedbackStatsResponse `json:"stats"`
}

func FromDiagnostics(d usecase.AdjustmentDiagnostics) AdjustmentResponse {
	return AdjustmentResponse{
		UserID:      d.UserID,
		Multipliers: d.Multipliers,
		Stats:       fromStats(d.Stats),
	}
}

func fromStats(s preference.Stats) FeedbackStatsResponse {
	return FeedbackStatsResponse{
		Total:    s.Total,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
