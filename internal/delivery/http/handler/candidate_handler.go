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

type CandidateHandler struct {
	candidates usecase.CandidateUsecase
	recommend  usecase.RecommendationUsecase
	matcher    usecase.MatchUsecase
}

func NewCandidateHandler(candidates usecase.CandidateUsecase, recommend usecase.RecommendationUsecase, matcher usecase.MatchUsecase) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, recommend: recommend, matcher: matcher}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/candidates")
	grp.Post("/", h.Upsert)
	grp.Get("/:candidate_id", h.Get)
	grp.Get("/:candidate_id/recommendations", h.Recommendations)
	grp.Get("/:candidate_id/matches", h.Matches)
}

func (h *CandidateHandler) Upsert(c fiber.Ctx) error {
	var req dto.CandidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	profile, err := h.candidates.Upsert(c.Context(), req.ToProfile())
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusCreated, "candidate indexed", fiber.Map{"id": profile.ID})
}

func (h *CandidateHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	profile, err := h.candidates.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrCandidateNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, profile)
}

// Recommendations serves the retrieval path: vector shortlist, cache
// consult, full scoring only on misses.
func (h *CandidateHandler) Recommendations(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit := fiber.Query(c, "limit", 10)

	results, err := h.recommend.JobsForCandidate(c.Context(), id, limit)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return middleware.NewAppError(fiber.StatusNotFound, "Candidate not indexed", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMatchResults(results))
}

// Matches scores the candidate against every active posting, bypassing the
// vector shortlist.
func (h *CandidateHandler) Matches(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit := fiber.Query(c, "limit", 10)

	results, err := h.matcher.MatchActive(c.Context(), id, limit)
	if err != nil {
		if errors.Is(err, usecase.ErrCandidateNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMatchResults(results))
}
