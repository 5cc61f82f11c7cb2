package repository

import (
	"context"

	"github.com/suawasthi/job-recom/internal/database"
	"github.com/suawasthi/job-recom/internal/ontology"
)

// PostgresSkillRepository reads the skills table into ontology nodes so the
// in-memory graph can be extended without a redeploy. The merge at startup
// is append-only; curated relations always win.
type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListNodes(ctx context.Context) ([]ontology.Node, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name, COALESCE(category,''), COALESCE(synonyms,'{}'), COALESCE(related,'{}')
		 FROM skills ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ontology.Node, 0)
	for rows.Next() {
		var n ontology.Node
		if err := rows.Scan(&n.Name, &n.Category, &n.Synonyms, &n.RelatedSkills); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
