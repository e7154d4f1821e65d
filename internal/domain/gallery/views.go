package gallery

import (
	"sort"

	"art-progression/internal/domain/artworks"
)

const (
	ViewGrid     = "grid"
	ViewTimeline = "timeline"
	ViewCompare  = "compare"
)

// SortGrid orders newest date first, later uploads first within a date.
// The input slice is not modified.
func SortGrid(all []artworks.Artwork) []artworks.Artwork {
	out := append([]artworks.Artwork(nil), all...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out
}

// SortChronological orders oldest date first, earlier uploads first within a date.
func SortChronological(all []artworks.Artwork) []artworks.Artwork {
	out := append([]artworks.Artwork(nil), all...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out
}

// Sequence returns the rendered order of a view, which is what the lightbox
// indexes into. Compare has no sequence of its own and falls back to the grid.
func Sequence(view string, all []artworks.Artwork) []artworks.Artwork {
	if view == ViewTimeline {
		return SortChronological(all)
	}
	return SortGrid(all)
}

// DateGroup is one timeline entry: every image sharing a date.
type DateGroup struct {
	Date     string
	Artworks []artworks.Artwork
}

func GroupTimeline(all []artworks.Artwork) []DateGroup {
	groups := []DateGroup{}
	for _, a := range SortChronological(all) {
		n := len(groups)
		if n > 0 && groups[n-1].Date == a.Date {
			groups[n-1].Artworks = append(groups[n-1].Artworks, a)
			continue
		}
		groups = append(groups, DateGroup{Date: a.Date, Artworks: []artworks.Artwork{a}})
	}
	return groups
}

// Compare returns the earliest and latest record by date. ok is false for an
// empty collection.
func Compare(all []artworks.Artwork) (first, latest artworks.Artwork, ok bool) {
	if len(all) == 0 {
		return first, latest, false
	}
	sorted := SortChronological(all)
	return sorted[0], sorted[len(sorted)-1], true
}

// Position is a lightbox slot within a rendered sequence.
type Position struct {
	Index   int
	HasPrev bool
	HasNext bool
}

// Lightbox clamps index into [0, n) without wrapping. ok is false when n is 0.
func Lightbox(n, index int) (Position, bool) {
	if n <= 0 {
		return Position{}, false
	}
	if index < 0 {
		index = 0
	}
	if index >= n {
		index = n - 1
	}
	return Position{
		Index:   index,
		HasPrev: index > 0,
		HasNext: index < n-1,
	}, true
}

// Navigate moves from index by step (typically -1 or +1), clamped to the sequence.
func Navigate(n, index, step int) (Position, bool) {
	return Lightbox(n, index+step)
}
