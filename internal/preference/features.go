package preference

import (
	"strings"

	"github.com/suawasthi/job-recom/internal/domain/job"
)

// skillVocabulary is the fixed skill-feature vocabulary. Order matters: the
// feature vector layout is derived from it and persisted models are only
// valid against the exact same layout.
var skillVocabulary = []string{
	"python", "react", "aws", "docker", "kubernetes", "javascript",
	"typescript", "nodejs", "django", "flask", "fastapi", "postgresql",
	"mongodb", "redis", "git", "linux", "agile", "scrum", "java",
	"spring", "angular", "vue", "sql", "mysql", "elasticsearch",
}

var jobTypeVocabulary = []string{"full_time", "part_time", "contract", "freelance"}

// FeatureNames returns the full ordered feature layout.
func FeatureNames() []string {
	names := make([]string, 0, FeatureWidth())
	for _, s := range skillVocabulary {
		names = append(names, "has_"+s)
	}
	names = append(names, "is_remote", "is_hybrid", "is_office")
	for _, jt := range jobTypeVocabulary {
		names = append(names, "is_"+jt)
	}
	names = append(names,
		"salary_range_low", "salary_range_high", "salary_range_avg",
		"is_startup", "is_enterprise",
		"min_experience", "max_experience",
		"is_junior", "is_mid", "is_senior",
		"has_benefits", "is_active",
	)
	return names
}

// FeatureWidth is the width of every feature vector produced by Features.
func FeatureWidth() int {
	return len(skillVocabulary) + 3 + len(jobTypeVocabulary) + 3 + 2 + 2 + 3 + 2
}

// Features renders a posting into the fixed-width numeric vector used for
// training and prediction.
func Features(p job.Posting) []float64 {
	v := make([]float64, 0, FeatureWidth())

	allSkills := make([]string, 0, len(p.RequiredSkills)+len(p.PreferredSkills))
	for _, s := range append(append([]string(nil), p.RequiredSkills...), p.PreferredSkills...) {
		allSkills = append(allSkills, strings.ToLower(strings.TrimSpace(s)))
	}
	for _, skill := range skillVocabulary {
		v = append(v, boolFeature(containsSubstring(allSkills, skill)))
	}

	isRemote := p.RemotePolicy == job.RemoteFull
	isHybrid := p.RemotePolicy == job.RemoteHybrid
	v = append(v, boolFeature(isRemote), boolFeature(isHybrid), boolFeature(!isRemote && !isHybrid))

	jobType := strings.ToLower(p.JobType)
	for _, jt := range jobTypeVocabulary {
		v = append(v, boolFeature(strings.Contains(jobType, jt)))
	}

	avgSalary := 0.0
	if p.MinSalary > 0 && p.MaxSalary > 0 {
		avgSalary = (p.MinSalary + p.MaxSalary) / 2
	}
	v = append(v, p.MinSalary/100000.0, p.MaxSalary/100000.0, avgSalary/100000.0)

	company := strings.ToLower(p.Company)
	v = append(v,
		boolFeature(containsAnyWord(company, "startup", "inc", "llc", "corp", "ltd")),
		boolFeature(containsAnyWord(company, "enterprise", "corporation", "group", "systems")),
	)

	v = append(v, float64(p.MinExperienceYears)/10.0, float64(p.MaxExperienceYears)/10.0)

	switch {
	case p.MinExperienceYears <= 2:
		v = append(v, 1.0, 0.0, 0.0)
	case p.MinExperienceYears <= 5:
		v = append(v, 0.0, 1.0, 0.0)
	default:
		v = append(v, 0.0, 0.0, 1.0)
	}

	v = append(v, boolFeature(p.HasBenefits), boolFeature(p.IsActive()))
	return v
}

// featureCategory maps each feature index onto one of the weight categories
// that learned importances feed back into. Features outside these slices do
// not influence any weight multiplier.
type featureCategory int

const (
	categoryNone featureCategory = iota
	categorySkill
	categoryLocation
	categorySalary
	categoryExperience
)

func categories() []featureCategory {
	cats := make([]featureCategory, 0, FeatureWidth())
	for range skillVocabulary {
		cats = append(cats, categorySkill)
	}
	cats = append(cats, categoryLocation, categoryLocation, categoryLocation)
	for range jobTypeVocabulary {
		cats = append(cats, categoryNone)
	}
	cats = append(cats, categorySalary, categorySalary, categorySalary)
	cats = append(cats, categoryNone, categoryNone)
	cats = append(cats, categoryExperience, categoryExperience)
	cats = append(cats, categoryExperience, categoryExperience, categoryExperience)
	cats = append(cats, categoryNone, categoryNone)
	return cats
}

func boolFeature(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func containsSubstring(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}

func containsAnyWord(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
