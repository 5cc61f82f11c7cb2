package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/suawasthi/job-recom/internal/config"
	"github.com/suawasthi/job-recom/internal/delivery/http/handler"
	"github.com/suawasthi/job-recom/internal/delivery/http/middleware"
	"github.com/suawasthi/job-recom/internal/delivery/http/routes"
	v1 "github.com/suawasthi/job-recom/internal/delivery/http/routes/v1"
	"github.com/suawasthi/job-recom/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container and the HTTP surface on top of it. The
// returned cleanup flushes the index snapshot and closes the pool.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		v1.Deps{
			Jobs:       c.Jobs,
			Candidates: c.Candidates,
			Matcher:    c.Matcher,
			Recommend:  c.Recommend,
			Feedback:   c.Feedback,
		},
	)
	registry.Register(f)

	hub := ws.NewHub(log.New(os.Stdout, "[WS] ", log.LstdFlags))
	go hub.Run()
	ws.SetDefaultHub(hub)
	wsHandler := ws.NewHandler(hub, log.New(os.Stdout, "[WS] ", log.LstdFlags))
	f.Get("/ws/events", wsHandler.HandleEventsWS)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(log.New(os.Stdout, "[HTTP] ", log.LstdFlags))
	app.Use(accessMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
