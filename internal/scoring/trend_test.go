package scoring

import (
	"testing"
	"time"
)

func TestTrailingMonthsWithinYear(t *testing.T) {
	months := TrailingMonths(2025, 11, 7)
	if len(months) != 7 {
		t.Fatalf("expected 7 months, got %d", len(months))
	}
	if months[0] != (YearMonth{2025, 5}) {
		t.Errorf("first month = %+v, want 2025-05", months[0])
	}
	if months[6] != (YearMonth{2025, 11}) {
		t.Errorf("last month = %+v, want 2025-11", months[6])
	}
}

func TestTrailingMonthsWrapsBackward(t *testing.T) {
	months := TrailingMonths(2025, 2, 7)
	want := []YearMonth{
		{2024, 8}, {2024, 9}, {2024, 10}, {2024, 11}, {2024, 12}, {2025, 1}, {2025, 2},
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("months[%d] = %+v, want %+v", i, months[i], want[i])
		}
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, 12)
	if start != time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start = %v", start)
	}
	// December wraps forward into the next year.
	if end != time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("end = %v", end)
	}

	inside := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	if !(inside.Equal(start) || inside.After(start)) || !inside.Before(end) {
		t.Errorf("end of month should fall inside the range")
	}
}
