package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/suawasthi/job-recom/internal/delivery/http/handler"
	v1 "github.com/suawasthi/job-recom/internal/delivery/http/routes/v1"
)

type Registry struct {
	health *handler.HealthHandler
	deps   v1.Deps
}

func NewRegistry(health *handler.HealthHandler, deps v1.Deps) *Registry {
	return &Registry{health: health, deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
