package scoring

import "testing"

func TestDrowsyPenaltyTiers(t *testing.T) {
	cases := []struct {
		duration int
		want     int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{9, 1},
		{10, 2},
		{49, 2},
		{50, 10},
		{300, 10},
	}
	for _, c := range cases {
		if got := DrowsyPenalty(c.duration); got != c.want {
			t.Errorf("DrowsyPenalty(%d) = %d, want %d", c.duration, got, c.want)
		}
	}
}

func TestDrowsyPenaltyMonotonic(t *testing.T) {
	prev := 0
	for d := 0; d <= 120; d++ {
		p := DrowsyPenalty(d)
		if p < prev {
			t.Fatalf("penalty decreased at duration %d: %d -> %d", d, prev, p)
		}
		prev = p
	}
}

func TestSafetyScoreClamp(t *testing.T) {
	cases := []struct {
		penalty int
		want    int
	}{
		{0, 100},
		{1, 99},
		{100, 0},
		{250, 0},
	}
	for _, c := range cases {
		if got := SafetyScore(c.penalty); got != c.want {
			t.Errorf("SafetyScore(%d) = %d, want %d", c.penalty, got, c.want)
		}
	}
}

func TestScoreSessionEmptyIsPerfect(t *testing.T) {
	got := ScoreSession(nil, nil)
	if got.SafetyScore != 100 {
		t.Errorf("empty session score = %d, want 100", got.SafetyScore)
	}
	if got.TotalPenalty != 0 {
		t.Errorf("empty session penalty = %d, want 0", got.TotalPenalty)
	}
}

func TestScoreSessionDrowsyAccumulation(t *testing.T) {
	// durations [4,5,9,10,49,50] -> penalties [0,1,1,2,2,10] -> 16 total
	durations := []int{4, 5, 9, 10, 49, 50}
	events := make([]DrowsyEvent, 0, len(durations))
	for _, d := range durations {
		events = append(events, DrowsyEvent{DurationSec: ip(d), GazeClosure: ip(1)})
	}

	got := ScoreSession(events, nil)
	if got.DrowsyPenalty != 16 {
		t.Errorf("drowsy penalty = %d, want 16", got.DrowsyPenalty)
	}
	if got.SafetyScore != 84 {
		t.Errorf("score = %d, want 84", got.SafetyScore)
	}
	if got.GazeClosureCount != 6 {
		t.Errorf("gaze closures = %d, want 6", got.GazeClosureCount)
	}
}

func TestScoreSessionCombined(t *testing.T) {
	drowsy := []DrowsyEvent{
		{DurationSec: ip(12), HeadDrop: ip(2), YawnFlag: ip(1)},
	}
	samples := []RapidSample{
		{CapturedAt: at(5, 55), RapidAcc: ip(3), RapidDeacc: ip(3)},
		{CapturedAt: at(5, 56), RapidAcc: ip(2), RapidDeacc: ip(3)},
		{CapturedAt: at(5, 57), RapidAcc: ip(4), RapidDeacc: ip(6)},
	}

	got := ScoreSession(drowsy, samples)
	if got.RapidPenalty != 21 {
		t.Errorf("rapid penalty = %d, want 21", got.RapidPenalty)
	}
	if got.TotalPenalty != 23 {
		t.Errorf("total penalty = %d, want 23", got.TotalPenalty)
	}
	if got.SafetyScore != 77 {
		t.Errorf("score = %d, want 77", got.SafetyScore)
	}
	if got.TotalRapidAcc != 9 || got.TotalRapidDeacc != 12 {
		t.Errorf("raw totals = %d/%d, want 9/12", got.TotalRapidAcc, got.TotalRapidDeacc)
	}
	if got.HeadDropCount != 2 || got.YawnFlagCount != 1 {
		t.Errorf("event counts = %d/%d, want 2/1", got.HeadDropCount, got.YawnFlagCount)
	}
}

func TestScoreSessionNilFieldsCountZero(t *testing.T) {
	got := ScoreSession([]DrowsyEvent{{}}, []RapidSample{{CapturedAt: at(10, 0)}})
	if got.SafetyScore != 100 {
		t.Errorf("nil-field session score = %d, want 100", got.SafetyScore)
	}
}
