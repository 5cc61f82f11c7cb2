package routes

import (
	"github.com/gofiber/fiber/v3"

	v1 "github.com/suawasthi/job-recom/internal/delivery/http/routes/v1"
)

func RegisterV1(r fiber.Router, deps v1.Deps) {
	if r == nil {
		return
	}

	v1.Register(r, deps)
}
