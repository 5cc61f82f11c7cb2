package ontology

import (
	"sort"
	"strings"
)

// Node is one canonical skill in the graph. Identity is the lowercase skill
// name; all lookups normalize before hitting the map.
type Node struct {
	Name              string
	Category          string
	Synonyms          []string
	RelatedSkills     []string
	IndustryRelevance map[string]float64
	Prerequisites     []string
}

// Graph is a static, append-only skill knowledge base. It is built once and
// read concurrently; no mutation happens on the scoring hot path.
type Graph struct {
	nodes    map[string]Node
	aliases  map[string]string // standardized spellings -> canonical name
	related  map[string][]string
}

// New builds a graph from the given nodes plus the shared alias table.
func New(nodes []Node) *Graph {
	g := &Graph{
		nodes:   make(map[string]Node, len(nodes)),
		aliases: make(map[string]string, len(skillAliases)),
		related: make(map[string][]string),
	}
	for alias, canonical := range skillAliases {
		g.aliases[alias] = canonical
	}
	g.Merge(nodes)
	return g
}

// Normalize lowercases, trims, and resolves common spelling variants of a
// skill name.
func (g *Graph) Normalize(skill string) string {
	n := strings.ToLower(strings.TrimSpace(skill))
	if canonical, ok := g.aliases[n]; ok {
		return canonical
	}
	return n
}

// Merge adds nodes to the graph. Merges are offline, append-only events:
// an incoming node never overwrites an existing node's curated relations,
// it can only fill fields the existing node left empty.
func (g *Graph) Merge(nodes []Node) {
	for _, n := range nodes {
		key := strings.ToLower(strings.TrimSpace(n.Name))
		if key == "" {
			continue
		}
		existing, ok := g.nodes[key]
		if !ok {
			g.nodes[key] = n
			g.linkRelations(key, n)
			continue
		}
		if existing.Category == "" {
			existing.Category = n.Category
		}
		if len(existing.Synonyms) == 0 {
			existing.Synonyms = n.Synonyms
		}
		if len(existing.RelatedSkills) == 0 {
			existing.RelatedSkills = n.RelatedSkills
			g.linkRelations(key, n)
		}
		if len(existing.IndustryRelevance) == 0 {
			existing.IndustryRelevance = n.IndustryRelevance
		}
		if len(existing.Prerequisites) == 0 {
			existing.Prerequisites = n.Prerequisites
		}
		g.nodes[key] = existing
	}
}

// linkRelations records bidirectional related-skill edges for nodes that are
// both present in the graph.
func (g *Graph) linkRelations(key string, n Node) {
	for _, rel := range n.RelatedSkills {
		relKey := strings.ToLower(strings.TrimSpace(rel))
		if relKey == "" {
			continue
		}
		g.related[key] = appendUnique(g.related[key], relKey)
		g.related[relKey] = appendUnique(g.related[relKey], key)
	}
}

func appendUnique(list []string, v string) []string {
	for _, it := range list {
		if it == v {
			return list
		}
	}
	return append(list, v)
}

// Node returns the node for a skill name, resolving aliases.
func (g *Graph) Node(skill string) (Node, bool) {
	n, ok := g.nodes[g.Normalize(skill)]
	return n, ok
}

// Len reports the number of canonical skills in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Similarity scores how close two skills are, in priority order:
// exact 1.0, synonym 0.9, direct related edge 0.7, shared category 0.5,
// otherwise 0.0.
func (g *Graph) Similarity(skillA, skillB string) float64 {
	a := g.Normalize(skillA)
	b := g.Normalize(skillB)
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	nodeA, okA := g.nodes[a]
	nodeB, okB := g.nodes[b]
	if okA && containsFold(nodeA.Synonyms, b) {
		return 0.9
	}
	if okB && containsFold(nodeB.Synonyms, a) {
		return 0.9
	}
	if !okA || !okB {
		return 0.0
	}
	if containsFold(nodeA.RelatedSkills, b) || containsFold(nodeB.RelatedSkills, a) {
		return 0.7
	}
	if nodeA.Category != "" && nodeA.Category == nodeB.Category {
		return 0.5
	}
	return 0.0
}

// RelatedSkills returns up to maxN skills related to the given one, combining
// curated relations with edges discovered at merge time. The order is stable.
func (g *Graph) RelatedSkills(skill string, maxN int) []string {
	key := g.Normalize(skill)
	node, ok := g.nodes[key]
	if !ok || maxN <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, maxN)
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || s == key {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, rel := range node.RelatedSkills {
		add(rel)
	}
	linked := append([]string(nil), g.related[key]...)
	sort.Strings(linked)
	for _, rel := range linked {
		add(rel)
	}

	if len(out) > maxN {
		out = out[:maxN]
	}
	return out
}

// IndustryRelevance returns how relevant a skill is to an industry, 0 when
// the skill or industry is unknown.
func (g *Graph) IndustryRelevance(skill, industry string) float64 {
	node, ok := g.nodes[g.Normalize(skill)]
	if !ok {
		return 0.0
	}
	return node.IndustryRelevance[strings.ToLower(strings.TrimSpace(industry))]
}

func containsFold(list []string, v string) bool {
	for _, it := range list {
		if strings.EqualFold(strings.TrimSpace(it), v) {
			return true
		}
	}
	return false
}
