package scoring

import "strings"

var highDemandTitles = []string{
	"data scientist", "machine learning engineer", "software engineer",
	"full stack developer", "devops engineer", "product manager",
	"data engineer", "ml engineer", "ai engineer",
}

var mediumDemandTitles = []string{
	"data analyst", "business analyst", "frontend developer",
	"backend developer", "qa engineer", "project manager",
	"marketing manager", "sales manager",
}

var highDemandLocations = []string{
	"san francisco", "new york", "seattle", "austin",
	"boston", "los angeles", "chicago", "denver",
}

var mediumDemandLocations = []string{
	"atlanta", "dallas", "phoenix", "miami",
	"philadelphia", "detroit", "minneapolis",
}

var highDemandSkills = map[string]struct{}{
	"python": {}, "machine learning": {}, "javascript": {}, "react": {},
	"aws": {}, "docker": {}, "kubernetes": {}, "sql": {}, "data science": {},
}

var mediumDemandSkills = map[string]struct{}{
	"java": {}, "c++": {}, "angular": {}, "vue": {}, "node.js": {},
	"mongodb": {}, "postgresql": {}, "git": {}, "jenkins": {},
}

// MarketDemand estimates current demand for a job from static reference
// lists, blending the title (0.5), location (0.3), and skills (0.2) signals.
func MarketDemand(jobTitle, location string, requiredSkills []string) float64 {
	score := titleDemand(jobTitle)*0.5 + locationDemand(location)*0.3 + skillsDemand(requiredSkills)*0.2
	return clamp01(score)
}

func titleDemand(jobTitle string) float64 {
	title := strings.ToLower(jobTitle)
	for _, t := range highDemandTitles {
		if strings.Contains(title, t) {
			return 0.9
		}
	}
	for _, t := range mediumDemandTitles {
		if strings.Contains(title, t) {
			return 0.7
		}
	}
	return 0.5
}

func locationDemand(location string) float64 {
	if location == "" {
		return 0.5
	}
	loc := strings.ToLower(location)
	for _, l := range highDemandLocations {
		if strings.Contains(loc, l) {
			return 0.9
		}
	}
	for _, l := range mediumDemandLocations {
		if strings.Contains(loc, l) {
			return 0.7
		}
	}
	return 0.5
}

func skillsDemand(skills []string) float64 {
	if len(skills) == 0 {
		return 0.5
	}
	var total float64
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if _, ok := highDemandSkills[key]; ok {
			total += 0.9
		} else if _, ok := mediumDemandSkills[key]; ok {
			total += 0.7
		}
	}
	return clamp01(total / float64(len(skills)))
}
