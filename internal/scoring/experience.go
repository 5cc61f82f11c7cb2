package scoring

// Experience scores a candidate's years of experience against a job's
// required range. Inside the range is 1.0. Below the minimum the score drops
// linearly per missing year down to 0.0. Above the maximum the penalty is
// lighter and floored at 0.7, over-qualified candidates still fit.
func Experience(p Params, candidateYears, minYears, maxYears int) float64 {
	if maxYears < minYears {
		maxYears = minYears
	}
	switch {
	case candidateYears >= minYears && candidateYears <= maxYears:
		return 1.0
	case candidateYears < minYears:
		gap := float64(minYears - candidateYears)
		score := 1.0 - gap*p.ExperiencePenaltyPerYear
		if score < 0.0 {
			return 0.0
		}
		return score
	default:
		excess := float64(candidateYears - maxYears)
		score := 1.0 - excess*p.OverExperiencePenalty
		if score < 0.7 {
			return 0.7
		}
		return score
	}
}
