package dto

import (
	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/feedback"
	"github.com/suawasthi/job-recom/internal/domain/job"
)

type JobRequest struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Company            string    `json:"company"`
	Location           string    `json:"location"`
	Description        string    `json:"description"`
	RemotePolicy       string    `json:"remote_policy"`
	RequiredSkills     []string  `json:"required_skills"`
	PreferredSkills    []string  `json:"preferred_skills"`
	MinExperienceYears int       `json:"min_experience_years"`
	MaxExperienceYears int       `json:"max_experience_years"`
	MinSalary          float64   `json:"min_salary"`
	MaxSalary          float64   `json:"max_salary"`
	JobType            string    `json:"job_type"`
	HasBenefits        bool      `json:"has_benefits"`
	Status             string    `json:"status"`
}

func (r JobRequest) ToPosting() job.Posting {
	status := job.Status(r.Status)
	if r.Status == "" {
		status = job.StatusActive
	}
	remote := job.RemotePolicy(r.RemotePolicy)
	if r.RemotePolicy == "" {
		remote = job.RemoteNone
	}
	return job.Posting{
		ID:                 r.ID,
		Title:              r.Title,
		Company:            r.Company,
		Location:           r.Location,
		Description:        r.Description,
		RemotePolicy:       remote,
		RequiredSkills:     r.RequiredSkills,
		PreferredSkills:    r.PreferredSkills,
		MinExperienceYears: r.MinExperienceYears,
		MaxExperienceYears: r.MaxExperienceYears,
		MinSalary:          r.MinSalary,
		MaxSalary:          r.MaxSalary,
		JobType:            r.JobType,
		HasBenefits:        r.HasBenefits,
		Status:             status,
	}
}

type CandidateRequest struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Skills            []string  `json:"skills"`
	ExperienceYears   int       `json:"experience_years"`
	CurrentRole       string    `json:"current_role"`
	Location          string    `json:"location"`
	SalaryExpectation float64   `json:"salary_expectation"`
	RemotePreference  float64   `json:"remote_preference"`
	Narrative         string    `json:"narrative"`
}

func (r CandidateRequest) ToProfile() candidate.Profile {
	return candidate.Profile{
		ID:                r.ID,
		Name:              r.Name,
		Skills:            r.Skills,
		ExperienceYears:   r.ExperienceYears,
		CurrentRole:       r.CurrentRole,
		Location:          r.Location,
		SalaryExpectation: r.SalaryExpectation,
		RemotePreference:  r.RemotePreference,
		Narrative:         r.Narrative,
		CareerLevel:       candidate.InferCareerLevel(r.ExperienceYears),
	}
}

type MatchRequest struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`
}

type FeedbackRequest struct {
	UserID uuid.UUID `json:"user_id"`
	JobID  uuid.UUID `json:"job_id"`
	Kind   string    `json:"kind"`
	Note   string    `json:"note"`
}

func (r FeedbackRequest) ToRecord() feedback.Record {
	return feedback.Record{
		ID:     uuid.New(),
		UserID: r.UserID,
		JobID:  r.JobID,
		Kind:   feedback.Kind(r.Kind),
		Note:   r.Note,
	}
}
