package matching

import (
	"fmt"
	"strings"

	"github.com/suawasthi/job-recom/internal/domain/match"
)

const maxExplanations = 4

// explain turns a scored result into short human-readable reasons and
// concerns, at most four of each.
func explain(res match.Result) (reasons, concerns []string) {
	c := res.Components

	switch {
	case c.Skill >= 0.8:
		reasons = append(reasons, fmt.Sprintf("Excellent skills match (%d matching skills)", len(res.MatchedSkills)))
	case c.Skill >= 0.6:
		reasons = append(reasons, fmt.Sprintf("Good skills alignment (%d matching skills)", len(res.MatchedSkills)))
	case c.Skill >= 0.4:
		reasons = append(reasons, fmt.Sprintf("Moderate skills match (%d matching skills)", len(res.MatchedSkills)))
	}
	if len(res.TransferableSkills) > 0 {
		reasons = append(reasons, "Has transferable skills: "+strings.Join(head(res.TransferableSkills, 2), ", "))
	}

	switch {
	case c.Experience >= 0.8:
		reasons = append(reasons, "Experience level is ideal for this role")
	case c.Experience >= 0.6:
		reasons = append(reasons, "Good experience level match")
	}

	switch {
	case c.Location >= 0.9:
		reasons = append(reasons, "Perfect location match")
	case c.Location >= 0.7:
		reasons = append(reasons, "Good location compatibility")
	}

	if c.CareerGrowth >= 0.7 {
		reasons = append(reasons, "Strong career advancement opportunity")
	}
	if c.MarketDemand >= 0.8 {
		reasons = append(reasons, "High demand role in current market")
	}

	if len(res.MissingSkills) > 0 {
		concerns = append(concerns, "May need to develop: "+strings.Join(head(res.MissingSkills, 2), ", "))
	}
	switch {
	case c.Experience < 0.4:
		concerns = append(concerns, "Experience level may be insufficient")
	case c.Experience < 0.6:
		concerns = append(concerns, "Experience level may not be ideal")
	}
	if c.Location < 0.5 {
		concerns = append(concerns, "Location requires significant adjustment")
	}
	if c.Salary < 0.5 {
		concerns = append(concerns, "Salary expectations may not align")
	}
	if c.MarketDemand < 0.4 {
		concerns = append(concerns, "Low market demand for this role")
	}

	return head(reasons, maxExplanations), head(concerns, maxExplanations)
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
