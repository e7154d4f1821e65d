package progress

import (
	"errors"
	"fmt"

	"art-progression/internal/domain/artworks"
)

var (
	ErrDuplicateDay = errors.New("day already exists")
	ErrDayRequired  = errors.New("day number is required")
)

// Numbering decides how a record's day number is obtained. A deployment uses
// exactly one policy; the two have incompatible duplicate rules.
type Numbering interface {
	Mode() string
	// DayOf reports the day number of a within the full snapshot all.
	DayOf(a artworks.Artwork, all []artworks.Artwork) int
	// ValidateNew checks an explicit day against the snapshot before any upload.
	ValidateNew(day *int, all []artworks.Artwork) error
	// ValidateChange checks an edit of the record with the given id.
	ValidateChange(id string, day *int, all []artworks.Artwork) error
	// Suggest proposes the day number for the next upload on date.
	Suggest(date string, all []artworks.Artwork) int
	// MultipleImages reports whether one upload may carry several images.
	MultipleImages() bool
}

// NumberingFor maps the configured mode to a policy.
func NumberingFor(mode string) Numbering {
	if mode == "explicit" {
		return Explicit{}
	}
	return DateDerived{}
}

// DateDerived numbers days from the earliest date in the collection.
type DateDerived struct{}

func (DateDerived) Mode() string { return "date" }

func (DateDerived) DayOf(a artworks.Artwork, all []artworks.Artwork) int {
	d, err := ParseDate(a.Date)
	if err != nil {
		return 0
	}
	return DayNumber(d, all)
}

func (DateDerived) ValidateNew(_ *int, _ []artworks.Artwork) error { return nil }

func (DateDerived) ValidateChange(_ string, _ *int, _ []artworks.Artwork) error { return nil }

func (DateDerived) Suggest(date string, all []artworks.Artwork) int {
	d, err := ParseDate(date)
	if err != nil {
		return 0
	}
	return DayNumber(d, all)
}

func (DateDerived) MultipleImages() bool { return true }

// Explicit is the legacy policy: the uploader supplies the day and it must be unique.
type Explicit struct{}

func (Explicit) Mode() string { return "explicit" }

func (Explicit) DayOf(a artworks.Artwork, _ []artworks.Artwork) int {
	if a.Day == nil {
		return 0
	}
	return *a.Day
}

func (e Explicit) ValidateNew(day *int, all []artworks.Artwork) error {
	return e.ValidateChange("", day, all)
}

func (Explicit) ValidateChange(id string, day *int, all []artworks.Artwork) error {
	if day == nil {
		if id == "" {
			return ErrDayRequired
		}
		return nil
	}
	if *day < 1 {
		return fmt.Errorf("day must be positive, got %d", *day)
	}
	for _, a := range all {
		if a.Day != nil && *a.Day == *day && (id == "" || a.ID != id) {
			return fmt.Errorf("day %d: %w", *day, ErrDuplicateDay)
		}
	}
	return nil
}

func (Explicit) Suggest(_ string, all []artworks.Artwork) int {
	highest := 0
	for _, a := range all {
		if a.Day != nil && *a.Day > highest {
			highest = *a.Day
		}
	}
	return highest + 1
}

func (Explicit) MultipleImages() bool { return false }
