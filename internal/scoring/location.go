package scoring

import (
	"strings"

	"github.com/suawasthi/job-recom/internal/domain/job"
)

// Location scores where a candidate is against where a job is. Fully remote
// postings always score RemoteWorkScore. On-site postings score
// SameLocationScore for a city match, hybrid postings a fixed intermediate
// score, and everything else a proximity estimate floored at RelocationFloor.
func Location(p Params, candidateLocation, jobLocation string, policy job.RemotePolicy) float64 {
	if policy == job.RemoteFull {
		return p.RemoteWorkScore
	}
	if sameCity(candidateLocation, jobLocation) {
		return p.SameLocationScore
	}
	if policy == job.RemoteHybrid {
		return p.HybridWorkScore
	}
	prox := proximity(candidateLocation, jobLocation)
	if prox < p.RelocationFloor {
		return p.RelocationFloor
	}
	return prox
}

// sameCity compares the city part of two "City, State, Country" strings.
func sameCity(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == lb {
		return true
	}
	return locationPart(la, 0) == locationPart(lb, 0)
}

// proximity approximates distance from shared location components: same
// state 0.6, same country 0.4, otherwise 0.2.
func proximity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	la := strings.ToLower(a)
	lb := strings.ToLower(b)

	stateA, stateB := locationPart(la, 1), locationPart(lb, 1)
	if stateA != "" && stateA == stateB {
		return 0.6
	}
	countryA, countryB := locationPart(la, 2), locationPart(lb, 2)
	if countryA != "" && countryA == countryB {
		return 0.4
	}
	return 0.2
}

func locationPart(location string, idx int) string {
	parts := strings.Split(location, ",")
	if idx >= len(parts) {
		return ""
	}
	return strings.TrimSpace(parts[idx])
}
