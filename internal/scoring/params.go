package scoring

// Params collects the tunable constants used by the component scorers. Every
// scorer is a pure function of its inputs plus one Params value, so score
// behavior is fully reproducible from configuration.
type Params struct {
	// Skill matching.
	TransferableThreshold float64
	SemanticThreshold     float64

	// Experience penalties, per year of gap.
	ExperiencePenaltyPerYear float64
	OverExperiencePenalty    float64

	// Location tiers.
	RemoteWorkScore   float64
	SameLocationScore float64
	HybridWorkScore   float64
	RelocationFloor   float64

	// Career level inference.
	SeniorKeywords []string
	JuniorKeywords []string
}

// DefaultParams returns the standard tuning used in production.
func DefaultParams() Params {
	return Params{
		TransferableThreshold:    0.7,
		SemanticThreshold:        0.8,
		ExperiencePenaltyPerYear: 0.15,
		OverExperiencePenalty:    0.05,
		RemoteWorkScore:          1.0,
		SameLocationScore:        1.0,
		HybridWorkScore:          0.8,
		RelocationFloor:          0.3,
		SeniorKeywords:           []string{"senior", "lead", "principal", "staff", "architect"},
		JuniorKeywords:           []string{"junior", "entry", "associate", "trainee", "intern"},
	}
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
