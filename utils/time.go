package utils

import "time"

// AddMonthsClamped adds n calendar months to t. When the target month is
// shorter than t's day-of-month the result clamps to the last day of the
// target month (Jan 31 + 1 month = Feb 28/29, never Mar 3).
func AddMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
