package scoring

// Salary scores a candidate's salary expectation against a job's range.
// Missing information on either side scores 1.0, nothing to disagree about.
// Expectations at or below the range favor the employer and also score 1.0;
// above the range the penalty grows with the excess ratio, floored at 0.3.
func Salary(expectation, minSalary, maxSalary float64) float64 {
	if expectation <= 0 || (minSalary <= 0 && maxSalary <= 0) {
		return 1.0
	}
	if minSalary <= 0 {
		minSalary = maxSalary * 0.8
	}
	if maxSalary <= 0 {
		maxSalary = minSalary * 1.2
	}

	if expectation <= maxSalary {
		return 1.0
	}

	excessRatio := (expectation - maxSalary) / maxSalary
	penalty := excessRatio * 1.5
	if penalty > 0.7 {
		penalty = 0.7
	}
	score := 1.0 - penalty
	if score < 0.3 {
		return 0.3
	}
	return score
}
