package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/delivery/http/dto"
	"github.com/suawasthi/job-recom/internal/delivery/http/middleware"
	"github.com/suawasthi/job-recom/internal/domain"
	"github.com/suawasthi/job-recom/internal/pkg/response"
	"github.com/suawasthi/job-recom/internal/usecase"
)

type JobHandler struct {
	jobs      usecase.JobUsecase
	recommend usecase.RecommendationUsecase
}

func NewJobHandler(jobs usecase.JobUsecase, recommend usecase.RecommendationUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, recommend: recommend}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Post("/", h.Upsert)
	grp.Get("/:job_id", h.Get)
	grp.Get("/:job_id/candidates", h.Candidates)
}

func (h *JobHandler) Upsert(c fiber.Ctx) error {
	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	posting, err := h.jobs.Upsert(c.Context(), req.ToPosting())
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusCreated, "job indexed", fiber.Map{"id": posting.ID})
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	posting, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrJobNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, posting)
}

// Candidates returns the best-matching indexed candidates for a posting.
func (h *JobHandler) Candidates(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit := fiber.Query(c, "limit", 10)

	results, err := h.recommend.CandidatesForJob(c.Context(), id, limit)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not indexed", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMatchResults(results))
}
