package progress

import (
	"time"

	"art-progression/internal/domain/artworks"
)

// CurrentStreak walks the distinct dates newest first, starting from today.
// Each date within one calendar day of the cursor extends the streak and
// becomes the new cursor, so an upload yesterday still keeps the streak alive
// but a two day gap ends it.
func CurrentStreak(all []artworks.Artwork, today time.Time) int {
	cursor := CalendarDay(today)
	streak := 0
	for _, d := range DistinctDates(all) {
		if daysBetween(d, cursor) > 1 {
			break
		}
		streak++
		cursor = d
	}
	return streak
}
