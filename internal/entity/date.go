package entity

import "time"

const DateLayout = "2006-01-02"

// ParseDate parses a calendar date string. Dates are stored as entered, so
// callers must treat a parse failure as "outside every window".
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Truncate drops the clock part keeping the calendar date of t in its own location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween is the calendar-day difference to - from.
func DaysBetween(from, to time.Time) int {
	const day = 24 * time.Hour
	return int(Truncate(to).Sub(Truncate(from)) / day)
}
