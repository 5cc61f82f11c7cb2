package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/suawasthi/job-recom/internal/app"
	"github.com/suawasthi/job-recom/internal/config"
	"github.com/suawasthi/job-recom/internal/repository"
	"github.com/suawasthi/job-recom/internal/trainer"
)

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := app.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	feedbackRepo := repository.NewPostgresFeedbackRepository(c.DB)
	t := trainer.New(
		feedbackRepo,
		c.Learner,
		c.Cache,
		cfg.Trainer.Schedule,
		log.New(os.Stdout, "[Trainer] ", log.LstdFlags),
	)

	if *once {
		t.Sweep(ctx)
		return
	}

	if err := t.Start(ctx); err != nil {
		log.Fatalf("failed to start trainer: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	cancel()
	t.Stop()
}
