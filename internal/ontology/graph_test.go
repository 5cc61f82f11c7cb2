package ontology

import "testing"

func TestSimilarity_Tiers(t *testing.T) {
	g := Default()

	cases := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact", "python", "python", 1.0},
		{"exact case and whitespace", " Python ", "python", 1.0},
		{"alias resolves to exact", "js", "javascript", 1.0},
		{"synonym", "python", "python2", 0.9},
		{"related edge", "python", "pandas", 0.7},
		{"related edge reversed", "pandas", "python", 0.7},
		{"shared category", "mysql", "sql", 0.7}, // direct edge wins over category
		{"shared category only", "lambda", "ec2", 0.5},
		{"unrelated", "css", "mysql", 0.0},
		{"unknown skill", "cobol", "python", 0.0},
		{"empty", "", "python", 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Similarity(tc.a, tc.b)
			if got != tc.want {
				t.Fatalf("Similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	g := Default()
	pairs := [][2]string{
		{"python", "pandas"},
		{"aws", "docker"},
		{"react", "javascript"},
		{"mysql", "mongodb"},
	}
	for _, p := range pairs {
		if g.Similarity(p[0], p[1]) != g.Similarity(p[1], p[0]) {
			t.Fatalf("similarity not symmetric for %v", p)
		}
	}
}

func TestRelatedSkills_Bounded(t *testing.T) {
	g := Default()

	rel := g.RelatedSkills("python", 3)
	if len(rel) != 3 {
		t.Fatalf("expected 3 related skills, got %d: %v", len(rel), rel)
	}

	all := g.RelatedSkills("python", 100)
	for _, s := range all {
		if s == "python" {
			t.Fatalf("related skills must not include the skill itself")
		}
	}

	if got := g.RelatedSkills("unknown-skill", 5); got != nil {
		t.Fatalf("expected nil for unknown skill, got %v", got)
	}
	if got := g.RelatedSkills("python", 0); got != nil {
		t.Fatalf("expected nil for maxN=0, got %v", got)
	}
}

func TestMerge_DoesNotOverwriteCuratedRelations(t *testing.T) {
	g := Default()
	before := g.RelatedSkills("python", 100)

	g.Merge([]Node{
		{
			Name:          "Python",
			Category:      "scripting",
			RelatedSkills: []string{"perl"},
			IndustryRelevance: map[string]float64{
				"retail": 1.0,
			},
		},
	})

	after := g.RelatedSkills("python", 100)
	if len(after) < len(before) {
		t.Fatalf("merge removed curated relations: before=%v after=%v", before, after)
	}
	for _, s := range after {
		if s == "perl" {
			t.Fatalf("merge overwrote curated relations with incoming ones")
		}
	}

	node, ok := g.Node("python")
	if !ok {
		t.Fatalf("python node missing after merge")
	}
	if node.Category != "programming" {
		t.Fatalf("merge overwrote curated category: %s", node.Category)
	}
}

func TestMerge_AddsNewNodes(t *testing.T) {
	g := Default()
	n := g.Len()

	g.Merge([]Node{{Name: "terraform", Category: "devops", RelatedSkills: []string{"aws", "docker"}}})

	if g.Len() != n+1 {
		t.Fatalf("expected %d nodes, got %d", n+1, g.Len())
	}
	if got := g.Similarity("terraform", "docker"); got != 0.7 {
		t.Fatalf("expected merged node related edge 0.7, got %v", got)
	}
}

func TestIndustryRelevance(t *testing.T) {
	g := Default()

	if got := g.IndustryRelevance("python", "technology"); got != 0.9 {
		t.Fatalf("expected 0.9, got %v", got)
	}
	if got := g.IndustryRelevance("python", "Technology"); got != 0.9 {
		t.Fatalf("industry lookup should be case-insensitive, got %v", got)
	}
	if got := g.IndustryRelevance("python", "retail"); got != 0.0 {
		t.Fatalf("expected 0 for unmapped industry, got %v", got)
	}
	if got := g.IndustryRelevance("cobol", "technology"); got != 0.0 {
		t.Fatalf("expected 0 for unknown skill, got %v", got)
	}
}
