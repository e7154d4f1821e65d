package progress

import (
	"sort"
	"time"

	"art-progression/internal/domain/artworks"
)

// Earliest returns the minimum parseable date in all.
func Earliest(all []artworks.Artwork) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, a := range all {
		d, err := ParseDate(a.Date)
		if err != nil {
			continue
		}
		if !found || d.Before(earliest) {
			earliest = d
			found = true
		}
	}
	return earliest, found
}

// DayNumber derives the 1-based day of date relative to the earliest date in
// all. With no dated records, date is its own earliest and yields 1. Dates
// before the current earliest yield zero or negative numbers.
func DayNumber(date time.Time, all []artworks.Artwork) int {
	date = CalendarDay(date)
	earliest, ok := Earliest(all)
	if !ok {
		return 1
	}
	return daysBetween(earliest, date) + 1
}

// DistinctDates returns the set of parseable dates in all, newest first.
func DistinctDates(all []artworks.Artwork) []time.Time {
	seen := map[string]struct{}{}
	out := make([]time.Time, 0, len(all))
	for _, a := range all {
		d, err := ParseDate(a.Date)
		if err != nil {
			continue
		}
		key := FormatDate(d)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}
