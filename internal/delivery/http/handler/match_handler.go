package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/suawasthi/job-recom/internal/delivery/http/dto"
	"github.com/suawasthi/job-recom/internal/delivery/http/middleware"
	"github.com/suawasthi/job-recom/internal/domain"
	"github.com/suawasthi/job-recom/internal/pkg/response"
	"github.com/suawasthi/job-recom/internal/usecase"
)

type MatchHandler struct {
	matcher usecase.MatchUsecase
}

func NewMatchHandler(matcher usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{matcher: matcher}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match", h.MatchOne)
}

// MatchOne runs the full scoring pipeline for a single candidate and
// posting pair and persists the outcome.
func (h *MatchHandler) MatchOne(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.matcher.MatchOne(c.Context(), req.CandidateID, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCandidateNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
		case errors.Is(err, usecase.ErrJobNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		case errors.Is(err, usecase.ErrJobNotActive):
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job is not active", nil, err)
		case errors.Is(err, domain.ErrValidation):
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMatchResult(result))
}
