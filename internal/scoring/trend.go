package scoring

import "time"

// YearMonth names one calendar month.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// TrailingMonths lists the n calendar months ending at the reference month,
// oldest first. Year boundaries wrap in both directions.
func TrailingMonths(year, month, n int) []YearMonth {
	months := make([]YearMonth, 0, n)
	for i := n - 1; i >= 0; i-- {
		t := time.Date(year, time.Month(month-i), 1, 0, 0, 0, 0, time.UTC)
		months = append(months, YearMonth{Year: t.Year(), Month: int(t.Month())})
	}
	return months
}

// MonthRange returns the half-open [start, end) interval covering one
// calendar month. Callers filter timestamps with >= start and < end so the
// month boundary at midnight lands in the following month.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
