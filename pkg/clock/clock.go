package clock

import "time"

// Clock abstracts wall-clock time so scheduling logic can be tested without
// waiting for real time to pass.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// DayKey returns the calendar-day identifier for t (date only, local time).
// Keys are lexically comparable.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// UntilNext returns the duration from now until the next occurrence of
// hour:minute. A target at or before now rolls over to tomorrow, so the
// result is always strictly positive.
func UntilNext(now time.Time, hour, minute int) time.Duration {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Sub(now)
}

// DaysRemaining returns the ceiling of the real-valued day difference between
// the expiry date and now. Negative once the date has passed.
func DaysRemaining(now, expiry time.Time) int {
	diff := expiry.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
