package seeder

import (
	"context"
	"fmt"

	"github.com/suawasthi/job-recom/internal/database"
	"github.com/suawasthi/job-recom/internal/ontology"
)

// SkillsSeeder writes the curated ontology nodes into the skills table so
// offline tooling can extend the graph with plain SQL. The app merges the
// table back into the in-memory graph at startup; merges never overwrite
// the curated relations seeded here.
type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "synonyms", "related", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, node := range ontology.DefaultNodes() {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category, synonyms, related)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4)
			 ON CONFLICT (name) DO NOTHING`,
			node.Name,
			node.Category,
			node.Synonyms,
			node.RelatedSkills,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{SkillsSeeder{}}
}
