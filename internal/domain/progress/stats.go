package progress

import (
	"time"

	"art-progression/internal/domain/artworks"
)

// TargetDays is the fixed horizon of the challenge.
const TargetDays = 365

type Stats struct {
	DaysCompleted int `json:"daysCompleted"`
	DaysRemaining int `json:"daysRemaining"`
	CurrentStreak int `json:"currentStreak"`
	TotalImages   int `json:"totalImages"`
}

// ComputeStats counts distinct dates, not records: several images on one day
// complete that day once.
func ComputeStats(all []artworks.Artwork, today time.Time) Stats {
	completed := len(DistinctDates(all))
	remaining := TargetDays - completed
	if remaining < 0 {
		remaining = 0
	}
	return Stats{
		DaysCompleted: completed,
		DaysRemaining: remaining,
		CurrentStreak: CurrentStreak(all, today),
		TotalImages:   len(all),
	}
}
