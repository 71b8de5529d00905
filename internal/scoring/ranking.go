package scoring

import "sort"

// DriverTotals is the per-vehicle aggregate a ranking runs over.
type DriverTotals struct {
	CarID            string
	CarBrand         string
	CarModel         string
	DriverAge        *int
	DriverSex        string
	DriverLocation   string
	TotalRapidAcc    int
	TotalRapidDeacc  int
	TotalGazeClosure int
	SessionCount     int
	TotalTravel      int
	TotalDataPoints  int
	// presence-based counts, used by the score variant only
	IncidentRows int
}

// TotalIncidents is the magnitude sum the rate variant ranks on.
func (d DriverTotals) TotalIncidents() int {
	return d.TotalRapidAcc + d.TotalRapidDeacc + d.TotalGazeClosure
}

// RankedDriver is one row of a best-drivers leaderboard.
type RankedDriver struct {
	Rank             int     `json:"rank"`
	CarID            string  `json:"carId"`
	CarBrand         string  `json:"carBrand"`
	CarModel         string  `json:"carModel"`
	DriverAge        *int    `json:"driverAge"`
	DriverSex        string  `json:"driverSex"`
	DriverLocation   string  `json:"driverLocation"`
	TotalRapidAcc    int     `json:"totalRapidAcc"`
	TotalRapidDeacc  int     `json:"totalRapidDeacc"`
	TotalGazeClosure int     `json:"totalGazeClosure"`
	TotalScore       int     `json:"totalScore"`
	DriverScore      float64 `json:"driverScore"`
	SessionCount     int     `json:"sessionCount"`
	IncidentRate     float64 `json:"incidentRate,omitempty"`
}

// DefaultRateRankingLimit caps the rate-based leaderboard.
const DefaultRateRankingLimit = 10

// DefaultScoreRankingLimit caps the score-based leaderboard.
const DefaultScoreRankingLimit = 5

// RankByIncidentRate builds the 1000-point leaderboard: incident rate is
// total incidents per session (session count floored to 1), the score is
// 1000 minus the rate scaled by 1000, floored at 0. Sorting is a stable
// ascending sort on the unrounded rate so ties keep their input order.
func RankByIncidentRate(rows []DriverTotals, limit int) []RankedDriver {
	if limit <= 0 {
		limit = DefaultRateRankingLimit
	}

	type scored struct {
		DriverTotals
		rate float64
	}
	entries := make([]scored, 0, len(rows))
	for _, r := range rows {
		sessions := r.SessionCount
		if sessions == 0 {
			sessions = 1
		}
		entries = append(entries, scored{
			DriverTotals: r,
			rate:         float64(r.TotalIncidents()) / float64(sessions),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].rate < entries[j].rate
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	ranked := make([]RankedDriver, 0, len(entries))
	for i, e := range entries {
		score := 1000 - e.rate*1000
		if score < 0 {
			score = 0
		}
		ranked = append(ranked, RankedDriver{
			Rank:             i + 1,
			CarID:            e.CarID,
			CarBrand:         e.CarBrand,
			CarModel:         e.CarModel,
			DriverAge:        e.DriverAge,
			DriverSex:        e.DriverSex,
			DriverLocation:   e.DriverLocation,
			TotalRapidAcc:    e.TotalRapidAcc,
			TotalRapidDeacc:  e.TotalRapidDeacc,
			TotalGazeClosure: e.TotalGazeClosure,
			TotalScore:       e.TotalIncidents(),
			DriverScore:      Round2(score),
			SessionCount:     e.SessionCount,
			IncidentRate:     Round4(e.rate),
		})
	}
	return ranked
}

// RankByScore builds the 100-point leaderboard: the base score is the
// fleet-wide ratio formula over each vehicle's own rows, topped up with a
// session-count bonus (up to 3) and a travel bonus (up to 2), capped at 100.
// Sorting is a stable descending sort on the final score.
func RankByScore(rows []DriverTotals, limit int) []RankedDriver {
	if limit <= 0 {
		limit = DefaultScoreRankingLimit
	}

	type scored struct {
		DriverTotals
		score float64
	}
	entries := make([]scored, 0, len(rows))
	for _, r := range rows {
		points := r.TotalDataPoints
		if points == 0 {
			points = 1
		}
		base := (1 - float64(r.IncidentRows)/float64(points)) * 100
		if base < 0 {
			base = 0
		}

		sessionBonus := float64(r.SessionCount) / 50
		if sessionBonus > 3 {
			sessionBonus = 3
		}
		travelBonus := float64(r.TotalTravel) / 500
		if travelBonus > 2 {
			travelBonus = 2
		}

		score := base + sessionBonus + travelBonus
		if score > 100 {
			score = 100
		}
		entries = append(entries, scored{DriverTotals: r, score: score})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	ranked := make([]RankedDriver, 0, len(entries))
	for i, e := range entries {
		ranked = append(ranked, RankedDriver{
			Rank:             i + 1,
			CarID:            e.CarID,
			CarBrand:         e.CarBrand,
			CarModel:         e.CarModel,
			DriverAge:        e.DriverAge,
			DriverSex:        e.DriverSex,
			DriverLocation:   e.DriverLocation,
			TotalRapidAcc:    e.TotalRapidAcc,
			TotalRapidDeacc:  e.TotalRapidDeacc,
			TotalGazeClosure: e.TotalGazeClosure,
			TotalScore:       e.TotalIncidents(),
			DriverScore:      Round2(e.score),
			SessionCount:     e.SessionCount,
		})
	}
	return ranked
}

// MonthlyListScore is the flat score used by the all-months leaderboard
// listing: 10 points off per incident, floored at 0.
func MonthlyListScore(totalIncidents int) float64 {
	score := 1000 - float64(totalIncidents)*10
	if score < 0 {
		score = 0
	}
	return Round2(score)
}
