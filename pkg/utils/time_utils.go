package utils

import "time"

// All persisted timestamps are unix seconds.
func NowUnixSeconds() int64 { return time.Now().Unix() }

// StartOfMonth returns the first instant of now's month in UTC.
func StartOfMonth(now time.Time) time.Time {
	y, m, _ := now.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// StartOfYear returns the first instant of now's year in UTC.
func StartOfYear(now time.Time) time.Time {
	return time.Date(now.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}
