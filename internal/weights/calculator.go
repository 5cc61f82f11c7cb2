package weights

import (
	"strings"

	"github.com/suawasthi/job-recom/internal/domain/candidate"
	"github.com/suawasthi/job-recom/internal/domain/job"
)

// Preferences are explicit user signals that nudge the weight shape. Values
// are in [0,1]; anything above 0.7 triggers the corresponding adjustment.
type Preferences struct {
	RemotePreference  float64
	SalarySensitivity float64
	GrowthFocus       float64
}

// MarketContext carries market-wide signals in [0,1].
type MarketContext struct {
	RemoteWorkTrend     float64
	SkillShortage       float64
	EconomicUncertainty float64
}

// DefaultMarketContext reflects the current steady-state assumptions.
func DefaultMarketContext() MarketContext {
	return MarketContext{
		RemoteWorkTrend:     0.7,
		SkillShortage:       0.6,
		EconomicUncertainty: 0.3,
	}
}

var industryKeywords = []struct {
	industry Industry
	// which fields of the posting are scanned
	titleAndDescription bool
	companyAndDesc      bool
	keywords            []string
}{
	{IndustryTechnology, true, false, []string{"software", "developer", "engineer", "programmer", "tech", "data scientist", "ai", "ml"}},
	{IndustryFinance, true, false, []string{"finance", "banking", "investment", "trading", "analyst", "accountant", "audit"}},
	{IndustryHealthcare, true, false, []string{"health", "medical", "nurse", "doctor", "pharmaceutical", "clinical", "patient"}},
	{IndustryStartup, false, true, []string{"startup", "scale", "growth", "venture", "funding", "series a", "series b"}},
	{IndustryEnterprise, false, true, []string{"enterprise", "corporate", "fortune 500", "multinational", "global"}},
}

// Calculator derives a per-(candidate, job) weight configuration. It is
// stateless and safe for concurrent use.
type Calculator struct {
	base Config
}

func NewCalculator() *Calculator {
	return &Calculator{base: Base()}
}

// Compute builds the weight config in ordered stages: the industry sets the
// shape, the career stage skews it, user preferences and learned multipliers
// correct it, market conditions nudge it, and normalization restores the
// sum-to-one invariant. A degenerate zero sum falls back to the industry
// base.
func (c *Calculator) Compute(cand candidate.Profile, posting job.Posting, prefs Preferences, learned Multipliers, market MarketContext) Config {
	industry := DetectIndustry(posting)
	base := ForIndustry(industry)

	stage := DetectCareerStage(cand, posting)
	cfg := applyStage(base, stage)
	cfg = applyPreferences(cfg, prefs)
	cfg = learned.Apply(cfg)
	cfg = applyMarket(cfg, market)

	return cfg.Normalize(base)
}

// DetectIndustry buckets a posting by keyword scan over its title, company,
// and description. Unmatched postings default to technology.
func DetectIndustry(posting job.Posting) Industry {
	title := strings.ToLower(posting.Title)
	company := strings.ToLower(posting.Company)
	description := strings.ToLower(posting.Description)

	for _, entry := range industryKeywords {
		for _, kw := range entry.keywords {
			if entry.titleAndDescription && (strings.Contains(title, kw) || strings.Contains(description, kw)) {
				return entry.industry
			}
			if entry.companyAndDesc && (strings.Contains(company, kw) || strings.Contains(description, kw)) {
				return entry.industry
			}
		}
	}
	return IndustryTechnology
}

// DetectCareerStage classifies from job-title keywords first, then from the
// candidate's years of experience.
func DetectCareerStage(cand candidate.Profile, posting job.Posting) CareerStage {
	title := strings.ToLower(posting.Title)

	if containsAny(title, "senior", "principal", "staff", "architect") {
		return StageSenior
	}
	if containsAny(title, "ceo", "cto", "cfo", "president", "executive") {
		return StageExecutive
	}
	if containsAny(title, "manager", "director", "vp", "head of", "chief", "lead") {
		return StageLead
	}
	if containsAny(title, "junior", "entry", "associate", "trainee", "intern") {
		return StageEntry
	}

	switch years := cand.ExperienceYears; {
	case years < 1:
		return StageEntry
	case years < 3:
		return StageJunior
	case years < 7:
		return StageMid
	case years < 12:
		return StageSenior
	default:
		return StageLead
	}
}

func applyStage(cfg Config, stage CareerStage) Config {
	adj, ok := stageAdjustments[stage]
	if !ok {
		return cfg
	}
	cfg.Skill *= adj.skill
	cfg.Experience *= adj.experience
	cfg.Location *= adj.location
	cfg.Salary *= adj.salary
	cfg.Semantic *= adj.semantic
	return cfg
}

func applyPreferences(cfg Config, prefs Preferences) Config {
	if prefs.RemotePreference > 0.7 {
		cfg.Location *= 0.5
	}
	if prefs.SalarySensitivity > 0.7 {
		cfg.Salary *= 1.3
	}
	if prefs.GrowthFocus > 0.7 {
		cfg.CareerGrowth *= 2.0
	}
	return cfg
}

func applyMarket(cfg Config, market MarketContext) Config {
	if market.RemoteWorkTrend > 0.6 {
		cfg.Location *= 1.0 - market.RemoteWorkTrend*0.3
	}
	if market.SkillShortage > 0.6 {
		cfg.Skill *= 1.0 + market.SkillShortage*0.2
	}
	if market.EconomicUncertainty > 0.6 {
		cfg.Salary *= 0.8
	}
	return cfg
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
