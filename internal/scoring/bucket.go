package scoring

import "time"

// BucketKey identifies one 10-minute wall-clock window.
type BucketKey struct {
	Year     int
	Month    time.Month
	Day      int
	Hour     int
	TenMin   int // minute / 10
}

// KeyFor returns the 10-minute window key for a timestamp.
func KeyFor(t time.Time) BucketKey {
	return BucketKey{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		TenMin: t.Minute() / 10,
	}
}

// Label renders the window start as "HH:MM" for detail rows.
func (k BucketKey) Label() string {
	return twoDigits(k.Hour) + ":" + twoDigits(k.TenMin*10)
}

func twoDigits(n int) string {
	return string([]byte{'0' + byte(n/10), '0' + byte(n%10)})
}

// RapidSample is one telemetry row's rapid-maneuver reading. Counts are
// pointers because the source columns are nullable; nil counts as zero.
type RapidSample struct {
	CapturedAt *time.Time
	RapidAcc   *int
	RapidDeacc *int
}

// TimeBucket accumulates rapid-maneuver counts inside one window.
type TimeBucket struct {
	Key      BucketKey
	AccSum   int
	DeaccSum int
}

// Total is the bucket's combined incident count.
func (b TimeBucket) Total() int {
	return b.AccSum + b.DeaccSum
}

// GroupTenMinute folds chronologically ordered samples into 10-minute
// buckets. A bucket closes as soon as the key changes from the previous
// sample, so identical keys reappearing later in an unsorted stream open a
// fresh bucket instead of merging. Samples without a timestamp are skipped.
func GroupTenMinute(samples []RapidSample) []TimeBucket {
	var buckets []TimeBucket
	var cur *TimeBucket

	for _, s := range samples {
		if s.CapturedAt == nil {
			continue
		}
		key := KeyFor(*s.CapturedAt)
		if cur == nil || cur.Key != key {
			if cur != nil {
				buckets = append(buckets, *cur)
			}
			cur = &TimeBucket{Key: key}
		}
		if s.RapidAcc != nil {
			cur.AccSum += *s.RapidAcc
		}
		if s.RapidDeacc != nil {
			cur.DeaccSum += *s.RapidDeacc
		}
	}
	if cur != nil {
		buckets = append(buckets, *cur)
	}
	return buckets
}
