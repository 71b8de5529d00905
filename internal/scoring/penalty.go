package scoring

import "time"

// DrowsyEvent is one detected drowsy-driving episode.
type DrowsyEvent struct {
	DetectedAt  *time.Time
	DurationSec *int
	GazeClosure *int
	HeadDrop    *int
	YawnFlag    *int
}

// DrowsyPenalty maps one episode's duration to penalty points.
//   - under 5s: 0
//   - 5s to 10s: 1
//   - 10s to 50s: 2
//   - 50s and over: 10
func DrowsyPenalty(durationSec int) int {
	switch {
	case durationSec < 5:
		return 0
	case durationSec < 10:
		return 1
	case durationSec < 50:
		return 2
	default:
		return 10
	}
}

// RapidPenalty sums the bucket totals. Grouping does not change the
// arithmetic total; it only shapes the per-bucket detail breakdown.
func RapidPenalty(buckets []TimeBucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Total()
	}
	return total
}

// SafetyScore subtracts the accumulated penalty from 100, floored at 0.
func SafetyScore(totalPenalty int) int {
	if score := 100 - totalPenalty; score > 0 {
		return score
	}
	return 0
}

// SessionScore is the full scoring result for one driving session.
type SessionScore struct {
	SafetyScore      int
	DrowsyPenalty    int
	RapidPenalty     int
	TotalPenalty     int
	GazeClosureCount int
	HeadDropCount    int
	YawnFlagCount    int
	TotalRapidAcc    int
	TotalRapidDeacc  int
	Buckets          []TimeBucket
}

// ScoreSession computes the session safety score from its drowsy episodes
// and chronologically ordered rapid-maneuver samples. A session with no
// events of either kind scores exactly 100.
func ScoreSession(drowsy []DrowsyEvent, samples []RapidSample) SessionScore {
	var result SessionScore

	for _, d := range drowsy {
		result.DrowsyPenalty += DrowsyPenalty(intOrZero(d.DurationSec))
		result.GazeClosureCount += intOrZero(d.GazeClosure)
		result.HeadDropCount += intOrZero(d.HeadDrop)
		result.YawnFlagCount += intOrZero(d.YawnFlag)
	}

	result.Buckets = GroupTenMinute(samples)
	for _, b := range result.Buckets {
		result.TotalRapidAcc += b.AccSum
		result.TotalRapidDeacc += b.DeaccSum
	}
	result.RapidPenalty = RapidPenalty(result.Buckets)

	result.TotalPenalty = result.DrowsyPenalty + result.RapidPenalty
	result.SafetyScore = SafetyScore(result.TotalPenalty)
	return result
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
