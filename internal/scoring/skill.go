package scoring

import (
	"github.com/suawasthi/job-recom/internal/ontology"
)

const (
	exactWeight        = 0.6
	semanticWeight     = 0.3
	transferableWeight = 0.1
	preferredBonusCap  = 0.1
)

// SkillBreakdown is the full result of a skill match, kept alongside the
// score so explanations can name the matched and missing skills.
type SkillBreakdown struct {
	Score               float64
	RequiredSkills      []string
	ExactMatches        []string
	SemanticMatches     []string
	TransferableMatches map[string]float64
	PreferredMatches    []string
	MissingSkills       []string
}

// Skill scores a candidate's skills against a job's required and preferred
// skills. Exact matches are set intersections after normalization,
// transferable matches come from ontology similarity above the configured
// threshold (first match wins per required skill), and semanticSims carries
// optional precomputed free-text similarities per required skill. The final
// score is 0.6 exact + 0.3 semantic + 0.1 transferable plus a preferred-skill
// bonus of at most 0.1, capped at 1.0.
func Skill(p Params, g *ontology.Graph, candidateSkills, requiredSkills, preferredSkills []string, semanticSims map[string]float64) SkillBreakdown {
	required := normalizeSkills(g, requiredSkills)
	if len(candidateSkills) == 0 || len(required) == 0 {
		return SkillBreakdown{RequiredSkills: required, MissingSkills: required, TransferableMatches: map[string]float64{}}
	}
	candidate := normalizeSkills(g, candidateSkills)
	preferred := normalizeSkills(g, preferredSkills)

	candidateSet := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		candidateSet[s] = struct{}{}
	}

	var exact []string
	for _, req := range required {
		if _, ok := candidateSet[req]; ok {
			exact = append(exact, req)
		}
	}

	var semantic []string
	for _, req := range required {
		if semanticSims[req] > p.SemanticThreshold {
			semantic = append(semantic, req)
		}
	}

	transferable := make(map[string]float64)
	for _, req := range required {
		if _, ok := candidateSet[req]; ok {
			continue
		}
		for _, cand := range candidate {
			sim := g.Similarity(cand, req)
			if sim >= p.TransferableThreshold && sim < 1.0 {
				transferable[req] = sim
				break
			}
		}
	}

	var prefMatched []string
	for _, pref := range preferred {
		if _, ok := candidateSet[pref]; ok {
			prefMatched = append(prefMatched, pref)
		}
	}

	n := float64(len(required))
	exactScore := float64(len(exact)) / n
	semanticScore := float64(len(semantic)) / n
	transferableScore := 0.0
	for _, sim := range transferable {
		transferableScore += sim
	}
	transferableScore /= n

	bonus := 0.0
	if len(preferred) > 0 {
		bonus = float64(len(prefMatched)) / float64(len(preferred)) * preferredBonusCap
	}

	matched := make(map[string]struct{}, len(required))
	for _, s := range exact {
		matched[s] = struct{}{}
	}
	for _, s := range semantic {
		matched[s] = struct{}{}
	}
	for s := range transferable {
		matched[s] = struct{}{}
	}
	var missing []string
	for _, req := range required {
		if _, ok := matched[req]; !ok {
			missing = append(missing, req)
		}
	}

	score := exactScore*exactWeight + semanticScore*semanticWeight + transferableScore*transferableWeight + bonus

	return SkillBreakdown{
		Score:               clamp01(score),
		RequiredSkills:      required,
		ExactMatches:        exact,
		SemanticMatches:     semantic,
		TransferableMatches: transferable,
		PreferredMatches:    prefMatched,
		MissingSkills:       missing,
	}
}

// normalizeSkills lowercases, resolves aliases, and dedupes while keeping
// input order.
func normalizeSkills(g *ontology.Graph, skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		n := g.Normalize(s)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
