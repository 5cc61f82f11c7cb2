package weights

import "fmt"

// Config holds the seven component weights used to combine sub-scores into
// an overall match score. A valid Config is non-negative and sums to 1.0.
type Config struct {
	Skill        float64 `json:"skill_weight"`
	Experience   float64 `json:"experience_weight"`
	Location     float64 `json:"location_weight"`
	Salary       float64 `json:"salary_weight"`
	Semantic     float64 `json:"semantic_weight"`
	MarketDemand float64 `json:"market_demand_weight"`
	CareerGrowth float64 `json:"career_growth_weight"`
}

// Sum returns the total of all seven weights.
func (c Config) Sum() float64 {
	return c.Skill + c.Experience + c.Location + c.Salary + c.Semantic + c.MarketDemand + c.CareerGrowth
}

// Normalize scales the weights to sum to 1.0. A zero sum cannot be
// normalized and returns the fallback unchanged.
func (c Config) Normalize(fallback Config) Config {
	total := c.Sum()
	if total == 0 {
		return fallback
	}
	return Config{
		Skill:        c.Skill / total,
		Experience:   c.Experience / total,
		Location:     c.Location / total,
		Salary:       c.Salary / total,
		Semantic:     c.Semantic / total,
		MarketDemand: c.MarketDemand / total,
		CareerGrowth: c.CareerGrowth / total,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("skill=%.2f exp=%.2f loc=%.2f sal=%.2f sem=%.2f mkt=%.2f growth=%.2f",
		c.Skill, c.Experience, c.Location, c.Salary, c.Semantic, c.MarketDemand, c.CareerGrowth)
}

// Base is the fallback weight configuration used when no industry profile
// applies or a computation degenerates.
func Base() Config {
	return Config{
		Skill:        0.35,
		Experience:   0.25,
		Location:     0.15,
		Salary:       0.10,
		Semantic:     0.10,
		MarketDemand: 0.03,
		CareerGrowth: 0.02,
	}
}

// Industry buckets a job falls into for weight selection.
type Industry string

const (
	IndustryTechnology Industry = "technology"
	IndustryFinance    Industry = "finance"
	IndustryHealthcare Industry = "healthcare"
	IndustryStartup    Industry = "startup"
	IndustryEnterprise Industry = "enterprise"
)

// industryConfigs are the per-industry base shapes. Industries without an
// entry fall back to Base.
var industryConfigs = map[Industry]Config{
	IndustryTechnology: {
		Skill:        0.45,
		Experience:   0.20,
		Location:     0.10,
		Salary:       0.10,
		Semantic:     0.10,
		MarketDemand: 0.03,
		CareerGrowth: 0.02,
	},
	IndustryFinance: {
		Skill:        0.25,
		Experience:   0.35,
		Location:     0.20,
		Salary:       0.15,
		Semantic:     0.03,
		MarketDemand: 0.01,
		CareerGrowth: 0.01,
	},
	IndustryHealthcare: {
		Skill:        0.20,
		Experience:   0.40,
		Location:     0.25,
		Salary:       0.10,
		Semantic:     0.03,
		MarketDemand: 0.01,
		CareerGrowth: 0.01,
	},
	IndustryStartup: {
		Skill:        0.40,
		Experience:   0.15,
		Location:     0.20,
		Salary:       0.15,
		Semantic:     0.08,
		MarketDemand: 0.01,
		CareerGrowth: 0.01,
	},
	IndustryEnterprise: {
		Skill:        0.30,
		Experience:   0.30,
		Location:     0.20,
		Salary:       0.12,
		Semantic:     0.05,
		MarketDemand: 0.02,
		CareerGrowth: 0.01,
	},
}

// ForIndustry returns the base weight shape for an industry.
func ForIndustry(ind Industry) Config {
	if cfg, ok := industryConfigs[ind]; ok {
		return cfg
	}
	return Base()
}

// CareerStage classifies how far along a candidate is, used to skew the
// industry shape.
type CareerStage string

const (
	StageEntry     CareerStage = "entry"
	StageJunior    CareerStage = "junior"
	StageMid       CareerStage = "mid"
	StageSenior    CareerStage = "senior"
	StageLead      CareerStage = "lead"
	StageExecutive CareerStage = "executive"
)

// stageAdjustment multiplies the five stage-sensitive weights. Market demand
// and career growth are left to the user-preference step.
type stageAdjustment struct {
	skill, experience, location, salary, semantic float64
}

var stageAdjustments = map[CareerStage]stageAdjustment{
	StageEntry:     {skill: 1.5, experience: 0.3, location: 1.2, salary: 0.8, semantic: 1.3},
	StageJunior:    {skill: 1.3, experience: 0.5, location: 1.1, salary: 0.9, semantic: 1.2},
	StageMid:       {skill: 1.0, experience: 1.0, location: 1.0, salary: 1.0, semantic: 1.0},
	StageSenior:    {skill: 0.8, experience: 1.3, location: 0.9, salary: 1.2, semantic: 0.9},
	StageLead:      {skill: 0.6, experience: 1.5, location: 0.8, salary: 1.3, semantic: 0.8},
	StageExecutive: {skill: 0.4, experience: 1.8, location: 0.7, salary: 1.5, semantic: 0.7},
}

// Multipliers are per-category weight multipliers, typically learned from
// user feedback. Neutral multipliers leave weights untouched.
type Multipliers struct {
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Location     float64 `json:"location"`
	Salary       float64 `json:"salary"`
	Semantic     float64 `json:"semantic"`
	MarketDemand float64 `json:"market_demand"`
	CareerGrowth float64 `json:"career_growth"`
}

// Neutral returns multipliers that leave every weight unchanged.
func Neutral() Multipliers {
	return Multipliers{
		Skill:        1.0,
		Experience:   1.0,
		Location:     1.0,
		Salary:       1.0,
		Semantic:     1.0,
		MarketDemand: 1.0,
		CareerGrowth: 1.0,
	}
}

// Apply multiplies a config's weights field by field.
func (m Multipliers) Apply(c Config) Config {
	return Config{
		Skill:        c.Skill * m.Skill,
		Experience:   c.Experience * m.Experience,
		Location:     c.Location * m.Location,
		Salary:       c.Salary * m.Salary,
		Semantic:     c.Semantic * m.Semantic,
		MarketDemand: c.MarketDemand * m.MarketDemand,
		CareerGrowth: c.CareerGrowth * m.CareerGrowth,
	}
}
