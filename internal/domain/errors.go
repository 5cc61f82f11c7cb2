package domain

import "errors"

// Engine error taxonomy. Every error leaving the engine wraps one of these
// sentinels so callers can branch with errors.Is.
var (
	// ErrValidation marks malformed candidate or job input. Rejected before
	// scoring, never coerced.
	ErrValidation = errors.New("validation error")

	// ErrInsufficientData marks a training request that cannot proceed:
	// feedback below the floor, or a single label class. Surfaced as a skip.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDependencyDegraded marks an unavailable external dependency
	// (embedding service, vector index backend). The engine falls back to
	// its degraded path instead of failing the request.
	ErrDependencyDegraded = errors.New("dependency degraded")

	// ErrModelIntegrity marks a persisted model whose feature width no
	// longer matches the current vocabulary. The model is discarded and the
	// user falls back to the bootstrapping strategy.
	ErrModelIntegrity = errors.New("model integrity error")
)
