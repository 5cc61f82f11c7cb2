package scoring

import (
	"strings"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
)

// careerPaths maps a current role onto its typical next roles.
var careerPaths = map[string][]string{
	"data analyst":         {"senior data analyst", "data scientist", "analytics manager"},
	"junior developer":     {"senior developer", "tech lead", "engineering manager"},
	"software engineer":    {"senior engineer", "tech lead", "engineering manager"},
	"data scientist":       {"senior data scientist", "ml engineer", "data science manager"},
	"product manager":      {"senior product manager", "product director", "vp product"},
	"marketing specialist": {"marketing manager", "marketing director", "vp marketing"},
}

// progressionPatterns are generic role-name transitions that indicate a step
// up even when no explicit career path is curated.
var progressionPatterns = [][2]string{
	{"junior", "senior"},
	{"associate", "senior"},
	{"analyst", "scientist"},
	{"developer", "engineer"},
	{"engineer", "lead"},
	{"lead", "manager"},
	{"manager", "director"},
}

// CareerGrowth estimates how much a role would advance a candidate's career.
// It blends title progression (0.4), level alignment (0.3), and advancement
// potential from the experience range (0.3).
func CareerGrowth(p Params, currentRole, jobTitle string, level candidate.CareerLevel, candidateYears, minYears, maxYears int) float64 {
	progression := careerProgression(currentRole, jobTitle)
	alignment := levelAlignment(p, level, jobTitle, minYears)
	advancement := advancementPotential(candidateYears, minYears, maxYears)

	score := progression*0.4 + alignment*0.3 + advancement*0.3
	return clamp01(score)
}

func careerProgression(currentRole, targetRole string) float64 {
	current := strings.ToLower(strings.TrimSpace(currentRole))
	target := strings.ToLower(strings.TrimSpace(targetRole))

	if next, ok := careerPaths[current]; ok {
		for _, role := range next {
			if strings.Contains(target, role) {
				return 0.9
			}
		}
	}
	for _, pat := range progressionPatterns {
		if strings.Contains(current, pat[0]) && strings.Contains(target, pat[1]) {
			return 0.8
		}
	}
	if current != "" && current == target {
		return 0.6
	}
	return 0.4
}

func levelAlignment(p Params, level candidate.CareerLevel, jobTitle string, minYears int) float64 {
	jobLevel := inferJobLevel(p, jobTitle, minYears)
	switch jobLevel - int(level) {
	case 1:
		return 0.9
	case 0:
		return 0.7
	case -1:
		return 0.5
	default:
		return 0.3
	}
}

func advancementPotential(candidateYears, minYears, maxYears int) float64 {
	switch {
	case candidateYears < minYears:
		return 0.9
	case candidateYears <= maxYears:
		return 0.8
	default:
		return 0.6
	}
}

// inferJobLevel maps a job onto the junior/mid/senior scale from its title
// keywords, falling back to the experience floor.
func inferJobLevel(p Params, jobTitle string, minYears int) int {
	title := strings.ToLower(jobTitle)
	for _, kw := range p.SeniorKeywords {
		if strings.Contains(title, kw) {
			return int(candidate.LevelSenior)
		}
	}
	for _, kw := range p.JuniorKeywords {
		if strings.Contains(title, kw) {
			return int(candidate.LevelJunior)
		}
	}
	switch {
	case minYears >= 5:
		return int(candidate.LevelSenior)
	case minYears >= 2:
		return int(candidate.LevelMid)
	default:
		return int(candidate.LevelJunior)
	}
}
