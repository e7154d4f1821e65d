package progress

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout    = "2006-01-02"
	displayLayout = "January 2, 2006"
	day           = 24 * time.Hour
)

// ParseDate parses a calendar date (YYYY-MM-DD) as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DisplayDate renders a stored date for humans, e.g. "March 5, 2025".
// Unparseable input is returned unchanged.
func DisplayDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format(displayLayout)
}

// CalendarDay strips the clock from t, keeping the calendar date of t's location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween is floor((to - from) / 1 day) for UTC midnights.
func daysBetween(from, to time.Time) int {
	diff := to.Sub(from)
	n := int(diff / day)
	if diff < 0 && diff%day != 0 {
		n--
	}
	return n
}
