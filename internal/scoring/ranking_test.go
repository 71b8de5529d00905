package scoring

import "testing"

func TestRankByIncidentRate(t *testing.T) {
	rows := []DriverTotals{
		{CarID: "A", TotalRapidAcc: 3, TotalRapidDeacc: 2, SessionCount: 10},  // rate 0.5
		{CarID: "B", TotalRapidAcc: 6, TotalRapidDeacc: 4, SessionCount: 100}, // rate 0.1
	}

	ranked := RankByIncidentRate(rows, 10)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ranked))
	}
	// B has more raw incidents but far more sessions; the rate wins.
	if ranked[0].CarID != "B" || ranked[1].CarID != "A" {
		t.Fatalf("order = %s,%s, want B,A", ranked[0].CarID, ranked[1].CarID)
	}
	if ranked[0].DriverScore != 900 {
		t.Errorf("B score = %v, want 900", ranked[0].DriverScore)
	}
	if ranked[1].DriverScore != 500 {
		t.Errorf("A score = %v, want 500", ranked[1].DriverScore)
	}
	if ranked[0].Rank != 1 || ranked[1].Rank != 2 {
		t.Errorf("ranks = %d,%d", ranked[0].Rank, ranked[1].Rank)
	}
	if ranked[0].IncidentRate != 0.1 {
		t.Errorf("B incident rate = %v, want 0.1", ranked[0].IncidentRate)
	}
}

func TestRankByIncidentRateTiesAreStable(t *testing.T) {
	rows := []DriverTotals{
		{CarID: "first", TotalRapidAcc: 2, SessionCount: 4},
		{CarID: "second", TotalRapidAcc: 1, SessionCount: 2},
	}
	ranked := RankByIncidentRate(rows, 10)
	if ranked[0].CarID != "first" {
		t.Errorf("tied rows must keep input order, got %s first", ranked[0].CarID)
	}
}

func TestRankByIncidentRateZeroSessionsFloorsToOne(t *testing.T) {
	ranked := RankByIncidentRate([]DriverTotals{
		{CarID: "A", TotalGazeClosure: 2, SessionCount: 0},
	}, 10)
	if ranked[0].IncidentRate != 2 {
		t.Errorf("incident rate = %v, want 2 (session count floored to 1)", ranked[0].IncidentRate)
	}
	if ranked[0].DriverScore != 0 {
		t.Errorf("score = %v, want 0 (floored)", ranked[0].DriverScore)
	}
}

func TestRankByIncidentRateLimit(t *testing.T) {
	rows := make([]DriverTotals, 15)
	for i := range rows {
		rows[i] = DriverTotals{CarID: "car", TotalRapidAcc: i, SessionCount: 1}
	}
	if got := len(RankByIncidentRate(rows, 0)); got != DefaultRateRankingLimit {
		t.Errorf("default limit = %d, want %d", got, DefaultRateRankingLimit)
	}
}

func TestRankByScore(t *testing.T) {
	rows := []DriverTotals{
		// base 90, no bonuses
		{CarID: "A", IncidentRows: 10, TotalDataPoints: 100, SessionCount: 0, TotalTravel: 0},
		// base 90, capped bonuses 3 + 2
		{CarID: "B", IncidentRows: 10, TotalDataPoints: 100, SessionCount: 200, TotalTravel: 2000},
	}

	ranked := RankByScore(rows, 5)
	if ranked[0].CarID != "B" {
		t.Fatalf("bonused driver should rank first, got %s", ranked[0].CarID)
	}
	if ranked[0].DriverScore != 95 {
		t.Errorf("B score = %v, want 95", ranked[0].DriverScore)
	}
	if ranked[1].DriverScore != 90 {
		t.Errorf("A score = %v, want 90", ranked[1].DriverScore)
	}
}

func TestRankByScoreCapAt100(t *testing.T) {
	ranked := RankByScore([]DriverTotals{
		{CarID: "clean", IncidentRows: 0, TotalDataPoints: 500, SessionCount: 500, TotalTravel: 9000},
	}, 5)
	if ranked[0].DriverScore != 100 {
		t.Errorf("score = %v, want capped 100", ranked[0].DriverScore)
	}
}

func TestRankByScoreDefaultLimit(t *testing.T) {
	rows := make([]DriverTotals, 8)
	for i := range rows {
		rows[i] = DriverTotals{CarID: "car", TotalDataPoints: 1}
	}
	if got := len(RankByScore(rows, 0)); got != DefaultScoreRankingLimit {
		t.Errorf("default limit = %d, want %d", got, DefaultScoreRankingLimit)
	}
}

func TestMonthlyListScore(t *testing.T) {
	if got := MonthlyListScore(7); got != 930 {
		t.Errorf("MonthlyListScore(7) = %v, want 930", got)
	}
	if got := MonthlyListScore(250); got != 0 {
		t.Errorf("MonthlyListScore(250) = %v, want 0", got)
	}
}
