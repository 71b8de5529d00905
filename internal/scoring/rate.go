package scoring

import "math"

// CohortStat is one group row of a fleet-wide safety-rate breakdown.
// Incident counts are presence-based: one incident per telemetry row whose
// relevant count field is positive, regardless of magnitude. This is distinct
// from the magnitude-based session penalty and must not be mixed with it.
type CohortStat struct {
	Label               string  `json:"label"`
	TotalDataPoints     int     `json:"totalDataPoints"`
	RapidAccIncidents   int     `json:"rapidAccIncidents"`
	RapidDeaccIncidents int     `json:"rapidDeaccIncidents"`
	DrowsyIncidents     int     `json:"drowsyIncidents"`
	SessionCount        int     `json:"sessionCount"`
	SafetyRate          float64 `json:"safetyRate"`
}

// Incidents is the combined presence-based incident count.
func (s CohortStat) Incidents() int {
	return s.RapidAccIncidents + s.RapidDeaccIncidents + s.DrowsyIncidents
}

// SafetyRate converts incident density into a 0-100 rate, rounded to one
// decimal. A zero denominator is substituted with 1, so an empty cohort
// rates 100: the empty cohort is maximally safe.
func SafetyRate(incidents, totalDataPoints int) float64 {
	if totalDataPoints == 0 {
		totalDataPoints = 1
	}
	unsafe := float64(incidents) / float64(totalDataPoints)
	return clampRate((1 - unsafe) * 100)
}

// SafetyRateGuarded is the variant used by the fleet summary: the rate is
// computed only when data points exist, otherwise it is 100 outright. Both
// zero-handling styles exist in the reporting surface and are kept separate.
func SafetyRateGuarded(incidents, totalDataPoints int) float64 {
	if totalDataPoints > 0 {
		unsafe := float64(incidents) / float64(totalDataPoints)
		return clampRate((1 - unsafe) * 100)
	}
	return 100
}

func clampRate(rate float64) float64 {
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	return Round1(rate)
}

// Round1 rounds to one decimal place. Rounding happens at the reporting
// boundary only; accumulation always runs on unrounded values.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to four decimal places.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
