package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/suawasthi/job-recom/internal/database"
)

// Runner executes seeders in declaration order and stops at the first
// failure. Order matters when later seeders reference earlier rows.
type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("seeded %s in %s", s.Name(), time.Since(start).Round(time.Millisecond))
		}
	}
	return nil
}
