package scoring

import "strings"

// LabelOther is the sentinel group for rows that cannot be classified.
// Unclassifiable rows stay in the aggregates under this label.
const LabelOther = "기타"

const districtSuffix = "구"

// District extracts the administrative district from a free-text location.
// The first whitespace-delimited token containing the district suffix wins,
// cut at and including the suffix; failing that the whole string is searched;
// failing that the sentinel is returned.
//
//	"부산시 해운대구" -> "해운대구"
//	"해운대구"        -> "해운대구"
//	"부산시"          -> "기타"
func District(location string) string {
	for _, token := range strings.Fields(location) {
		if i := strings.Index(token, districtSuffix); i >= 0 {
			return token[:i+len(districtSuffix)]
		}
	}
	if i := strings.Index(location, districtSuffix); i >= 0 {
		return location[:i+len(districtSuffix)]
	}
	return LabelOther
}

// AgeGroup buckets a driver age into decades. Ages outside [20, ∞) and
// missing ages fall back to the sentinel.
func AgeGroup(age *int) string {
	if age == nil {
		return LabelOther
	}
	switch {
	case *age >= 20 && *age < 30:
		return "20대"
	case *age >= 30 && *age < 40:
		return "30대"
	case *age >= 40 && *age < 50:
		return "40대"
	case *age >= 50:
		return "50대 이상"
	default:
		return LabelOther
	}
}

// Demographic is the combined age-bracket/sex group key, e.g. "20대 남".
func Demographic(age *int, sex string) string {
	sex = strings.TrimSpace(sex)
	if sex == "" {
		sex = LabelOther
	}
	return AgeGroup(age) + " " + sex
}

// hourWindows in their fixed display order.
var hourWindows = []string{
	"00-03시", "03-06시", "06-09시", "09-12시",
	"12-15시", "15-18시", "18-21시", "21-24시",
}

// HourWindow buckets an hour-of-day into a fixed 3-hour window. The final
// window covers 21:00 through 24:00. Missing or out-of-range hours fall back
// to the sentinel.
func HourWindow(hour *int) string {
	if hour == nil || *hour < 0 || *hour > 24 {
		return LabelOther
	}
	h := *hour
	if h >= 21 { // 21-24 tail, hour 24 folds in
		return hourWindows[len(hourWindows)-1]
	}
	return hourWindows[h/3]
}

// HourWindowOrder gives the sort position of a window label; unknown labels
// sort after every fixed window.
func HourWindowOrder(label string) int {
	for i, w := range hourWindows {
		if w == label {
			return i
		}
	}
	return len(hourWindows)
}
