package scoring

import "testing"

func TestSafetyRate(t *testing.T) {
	cases := []struct {
		incidents int
		points    int
		want      float64
	}{
		{0, 100, 100},
		{5, 100, 95},
		{1, 3, 66.7},
		{100, 100, 0},
		{150, 100, 0}, // clamped, never negative
	}
	for _, c := range cases {
		if got := SafetyRate(c.incidents, c.points); got != c.want {
			t.Errorf("SafetyRate(%d, %d) = %v, want %v", c.incidents, c.points, got, c.want)
		}
	}
}

func TestSafetyRateEmptyCohortDefaultsTo100(t *testing.T) {
	if got := SafetyRate(0, 0); got != 100 {
		t.Errorf("empty cohort rate = %v, want 100", got)
	}
	if got := SafetyRateGuarded(0, 0); got != 100 {
		t.Errorf("guarded empty cohort rate = %v, want 100", got)
	}
}

func TestSafetyRateGuardedMatchesRatioPathWhenNonEmpty(t *testing.T) {
	if a, b := SafetyRate(7, 200), SafetyRateGuarded(7, 200); a != b {
		t.Errorf("variants disagree on non-empty cohort: %v vs %v", a, b)
	}
}

func TestCohortStatIncidents(t *testing.T) {
	s := CohortStat{RapidAccIncidents: 3, RapidDeaccIncidents: 4, DrowsyIncidents: 5}
	if s.Incidents() != 12 {
		t.Errorf("Incidents() = %d, want 12", s.Incidents())
	}
}

func TestRounding(t *testing.T) {
	if got := Round1(66.666); got != 66.7 {
		t.Errorf("Round1 = %v", got)
	}
	if got := Round2(99.996); got != 100.0 {
		t.Errorf("Round2 = %v", got)
	}
	if got := Round4(0.123456); got != 0.1235 {
		t.Errorf("Round4 = %v", got)
	}
}
