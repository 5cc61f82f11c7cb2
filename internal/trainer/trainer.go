// Package trainer wires up the cron job that periodically refits preference
// models and refreshes weight adjustments for every user with feedback.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/suawasthi/job-recom/internal/domain"
	"github.com/suawasthi/job-recom/internal/preference"
)

// UserSource lists the users eligible for a training sweep.
type UserSource interface {
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Locker serializes training per user across trainer replicas. A nil-safe
// implementation that always grants the lock is acceptable for single-node
// deployments.
type Locker interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

const lockTTL = 10 * time.Minute

// Trainer wraps robfig/cron and runs the sweep loop.
type Trainer struct {
	cron    *cron.Cron
	users   UserSource
	learner *preference.Learner
	locks   Locker
	spec    string
	logger  *log.Logger
}

func New(users UserSource, learner *preference.Learner, locks Locker, spec string, logger *log.Logger) *Trainer {
	return &Trainer{
		cron:    cron.New(cron.WithLogger(cron.DefaultLogger)),
		users:   users,
		learner: learner,
		locks:   locks,
		spec:    spec,
		logger:  logger,
	}
}

// Start registers the sweep and starts the scheduler. One sweep runs
// immediately so fresh deployments do not wait for the first tick.
func (t *Trainer) Start(ctx context.Context) error {
	_, err := t.cron.AddFunc(t.spec, func() {
		t.Sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	t.cron.Start()
	t.logger.Printf("cron started, spec: %s", t.spec)

	go t.Sweep(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (t *Trainer) Stop() {
	t.cron.Stop()
	t.logger.Printf("cron stopped")
}

// Sweep trains and refreshes adjustments for every user with feedback. A
// failure for one user never aborts the rest of the sweep.
func (t *Trainer) Sweep(ctx context.Context) {
	users, err := t.users.ListUserIDs(ctx)
	if err != nil {
		t.logger.Printf("listing users: %v", err)
		return
	}
	if len(users) == 0 {
		t.logger.Printf("no feedback yet, nothing to train")
		return
	}

	t.logger.Printf("sweep started for %d user(s)", len(users))
	trained := 0
	for _, userID := range users {
		if ctx.Err() != nil {
			t.logger.Printf("sweep cancelled: %v", ctx.Err())
			return
		}
		if t.trainOne(ctx, userID) {
			trained++
		}
	}
	t.logger.Printf("sweep complete: %d/%d user(s) trained", trained, len(users))
}

func (t *Trainer) trainOne(ctx context.Context, userID uuid.UUID) bool {
	if t.locks != nil {
		ok, err := t.locks.SetIfNotExists(ctx, lockKey(userID), "1", lockTTL)
		if err != nil {
			t.logger.Printf("lock for user %s: %v", userID, err)
		}
		if err == nil && !ok {
			t.logger.Printf("user %s locked by another trainer, skipping", userID)
			return false
		}
	}

	fitted := false
	if _, err := t.learner.Train(ctx, userID); err != nil {
		if !errors.Is(err, domain.ErrInsufficientData) {
			t.logger.Printf("training user %s: %v", userID, err)
		}
	} else {
		fitted = true
	}

	if _, err := t.learner.UpdateAdjustments(ctx, userID); err != nil {
		t.logger.Printf("updating adjustments for user %s: %v", userID, err)
		return false
	}
	return fitted
}

func lockKey(userID uuid.UUID) string {
	return "train:lock:" + userID.String()
}
