package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain/feedback"
	"github.com/suawasthi/job-recom/internal/preference"
	"github.com/suawasthi/job-recom/internal/weights"
)

type FeedbackUsecase interface {
	Record(ctx context.Context, rec feedback.Record) error
	Diagnostics(ctx context.Context, userID uuid.UUID) (AdjustmentDiagnostics, error)
}

// AdjustmentDiagnostics is the read-only view of a user's learning state.
type AdjustmentDiagnostics struct {
	UserID      uuid.UUID
	Multipliers weights.Multipliers
	Stats       preference.Stats
}

type Feedback struct {
	learner *preference.Learner
	logger  *log.Logger
}

func NewFeedbackUsecase(learner *preference.Learner, logger *log.Logger) *Feedback {
	return &Feedback{learner: learner, logger: logger}
}

// Record appends a feedback event and refreshes the user's weight
// adjustments. A failed refresh is logged, not surfaced; the event itself is
// already durable and the next refresh will pick it up.
func (u *Feedback) Record(ctx context.Context, rec feedback.Record) error {
	if err := u.learner.RecordFeedback(ctx, rec); err != nil {
		return err
	}
	if _, err := u.learner.UpdateAdjustments(ctx, rec.UserID); err != nil {
		u.logger.Printf("adjustment refresh failed for %s: %v", rec.UserID, err)
	}
	return nil
}

func (u *Feedback) Diagnostics(ctx context.Context, userID uuid.UUID) (AdjustmentDiagnostics, error) {
	mult, err := u.learner.Adjustments(ctx, userID)
	if err != nil {
		return AdjustmentDiagnostics{}, err
	}
	stats, err := u.learner.Stats(ctx, userID)
	if err != nil {
		return AdjustmentDiagnostics{}, err
	}
	return AdjustmentDiagnostics{UserID: userID, Multipliers: mult, Stats: stats}, nil
}
