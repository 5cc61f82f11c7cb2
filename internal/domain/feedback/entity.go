package feedback

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/domain"
)

type Kind string

const (
	KindRelevant    Kind = "relevant"
	KindNotRelevant Kind = "not_relevant"
	KindMaybeLater  Kind = "maybe_later"
	KindBookmark    Kind = "bookmark"
	KindHide        Kind = "hide"
)

func (k Kind) Valid() bool {
	switch k {
	case KindRelevant, KindNotRelevant, KindMaybeLater, KindBookmark, KindHide:
		return true
	}
	return false
}

// Record is one implicit-feedback event in the append-only per-user log.
type Record struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JobID     uuid.UUID
	Kind      Kind
	Note      string
	CreatedAt time.Time
}

func (r Record) Validate() error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("%w: feedback user id is required", domain.ErrValidation)
	}
	if r.JobID == uuid.Nil {
		return fmt.Errorf("%w: feedback job id is required", domain.ErrValidation)
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: unknown feedback kind %q", domain.ErrValidation, r.Kind)
	}
	return nil
}

// IsPositive reports whether the record reads as a positive training signal.
func (r Record) IsPositive() bool {
	return r.Kind == KindBookmark || r.Kind == KindRelevant
}

// IsNegative reports whether the record reads as a negative training signal.
// "Maybe later" is treated as a soft negative.
func (r Record) IsNegative() bool {
	return r.Kind == KindHide || r.Kind == KindNotRelevant || r.Kind == KindMaybeLater
}
