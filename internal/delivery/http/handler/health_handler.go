package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/suawasthi/job-recom/internal/database"
	"github.com/suawasthi/job-recom/internal/infrastructure/cache"
	"github.com/suawasthi/job-recom/internal/pkg/response"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, c *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	components := fiber.Map{
		"database": "ok",
		"cache":    "ok",
	}
	status := fiber.StatusOK

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			components["database"] = "unavailable"
			status = fiber.StatusServiceUnavailable
		}
	}
	if err := h.cache.Ping(ctx); err != nil {
		// The cache degrades to bypass, so it does not fail health.
		components["cache"] = "bypassed"
	}

	return response.Success(c, status, response.MessageOK, components)
}
