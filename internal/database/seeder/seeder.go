// Package seeder populates reference data the matcher depends on, such
// as the skill catalog, after migrations have run.
package seeder

import (
	"context"

	"github.com/suawasthi/job-recom/internal/database"
)

// Seeder loads one slice of reference data. Implementations must be
// idempotent; the runner executes every seeder on each boot.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
