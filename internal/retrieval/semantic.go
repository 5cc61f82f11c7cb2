package retrieval

import (
	"context"
	"strings"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/job"
	"github.com/suawasthi/job-recom/internal/ontology"
)

// SemanticScorer derives embedding-based similarity signals for the matching
// engine. Skill keys come back graph-normalized so they line up with the
// skill scorer's view of the required set.
type SemanticScorer struct {
	embedder Embedder
	graph    *ontology.Graph
}

func NewSemanticScorer(embedder Embedder, graph *ontology.Graph) *SemanticScorer {
	return &SemanticScorer{embedder: embedder, graph: graph}
}

// SkillSimilarities scores each required skill against the candidate's
// free-text narrative. An empty narrative yields no signal, not an error.
func (s *SemanticScorer) SkillSimilarities(ctx context.Context, freeText string, requiredSkills []string) (map[string]float64, error) {
	freeText = strings.TrimSpace(freeText)
	if freeText == "" || len(requiredSkills) == 0 {
		return nil, nil
	}

	textVec, err := s.embedder.Embed(ctx, freeText)
	if err != nil {
		return nil, err
	}

	sims := make(map[string]float64, len(requiredSkills))
	for _, skill := range requiredSkills {
		norm := s.graph.Normalize(skill)
		if norm == "" {
			continue
		}
		skillVec, err := s.embedder.Embed(ctx, norm)
		if err != nil {
			return nil, err
		}
		sims[norm] = clampUnit(cosine(textVec, skillVec))
	}
	return sims, nil
}

// JobFit is the overall embedding similarity between a candidate and a
// posting, using the same canonical texts the retrieval index stores.
func (s *SemanticScorer) JobFit(ctx context.Context, cand candidate.Profile, posting job.Posting) (float64, error) {
	candVec, err := s.embedder.Embed(ctx, CandidateText(cand))
	if err != nil {
		return 0, err
	}
	jobVec, err := s.embedder.Embed(ctx, JobText(posting))
	if err != nil {
		return 0, err
	}
	return clampUnit(cosine(candVec, jobVec)), nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
