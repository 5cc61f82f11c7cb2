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

type FeedbackHandler struct {
	feedback usecase.FeedbackUsecase
}

func NewFeedbackHandler(feedback usecase.FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/feedback", h.Record)
	r.Get("/users/:user_id/adjustments", h.Adjustments)
}

func (h *FeedbackHandler) Record(c fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec := req.ToRecord()
	if err := h.feedback.Record(c.Context(), rec); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusCreated, "feedback recorded", fiber.Map{"id": rec.ID})
}

func (h *FeedbackHandler) Adjustments(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	diag, err := h.feedback.Diagnostics(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromDiagnostics(diag))
}
