package preference

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain"
	"github.com/suawasthi/job-recom/internal/domain/feedback"
	"github.com/suawasthi/job-recom/internal/domain/job"
)

// Model is the persisted per-user training artifact: the fitted classifier,
// the scaler it was fit with, and the evaluation that produced it. It is
// serialized as one blob per user in the artifact store.
type Model struct {
	UserID       uuid.UUID `json:"user_id"`
	FeatureNames []string  `json:"feature_names"`
	Classifier   Logistic  `json:"classifier"`
	Scaler       Scaler    `json:"scaler"`
	Metrics      Metrics   `json:"metrics"`
	TrainedAt    time.Time `json:"trained_at"`
	SampleCount  int       `json:"sample_count"`
}

// validate checks the artifact against the current feature vocabulary. A
// width mismatch means the vocabulary changed since training and the model
// cannot be applied.
func (m Model) validate() error {
	if len(m.FeatureNames) != FeatureWidth() || len(m.Classifier.Coefficients) != FeatureWidth() {
		return fmt.Errorf("%w: model width %d does not match feature vocabulary %d",
			domain.ErrModelIntegrity, len(m.Classifier.Coefficients), FeatureWidth())
	}
	return nil
}

// FeatureImportances maps absolute coefficient magnitudes back onto feature
// names.
func (m Model) FeatureImportances() map[string]float64 {
	out := make(map[string]float64, len(m.FeatureNames))
	for i, name := range m.FeatureNames {
		c := m.Classifier.Coefficients[i]
		if c < 0 {
			c = -c
		}
		out[name] = c
	}
	return out
}

// ArtifactStore persists one model blob per user.
type ArtifactStore interface {
	Save(ctx context.Context, m Model) error
	Load(ctx context.Context, userID uuid.UUID) (Model, bool, error)
}

// FeedbackStore is the append-only per-user feedback log.
type FeedbackStore interface {
	Append(ctx context.Context, rec feedback.Record) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]feedback.Record, error)
}

// JobStore resolves the postings feedback was given on.
type JobStore interface {
	Get(ctx context.Context, id uuid.UUID) (job.Posting, error)
}

// AdjustmentStore persists one weight-adjustment record per user.
type AdjustmentStore interface {
	Get(ctx context.Context, userID uuid.UUID) (Adjustment, bool, error)
	Put(ctx context.Context, adj Adjustment) error
}
