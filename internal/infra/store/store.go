package store

import (
	"context"
	"errors"

	"art-progression/internal/domain/artworks"
)

const (
	SourceStore    = "store"
	SourceFallback = "fallback"
)

var (
	ErrNotConfigured = errors.New("artwork store is not configured")
	ErrNotFound      = errors.New("artwork not found")
)

// Snapshot is the full current collection. Day numbers and streaks must be
// derived from a Snapshot, never from a cached subset of it.
type Snapshot struct {
	Artworks []artworks.Artwork
	Source   string
}

// ReadOnly is true when records came from the fallback document and carry no ids.
func (s Snapshot) ReadOnly() bool {
	return s.Source == SourceFallback
}

// Find returns the record with id.
func (s Snapshot) Find(id string) (artworks.Artwork, bool) {
	if id == "" {
		return artworks.Artwork{}, false
	}
	for _, a := range s.Artworks {
		if a.ID == id {
			return a, true
		}
	}
	return artworks.Artwork{}, false
}

// Store persists artworks. Callers re-read with FetchAll after every
// successful mutation.
type Store interface {
	FetchAll(ctx context.Context) (Snapshot, error)
	Create(ctx context.Context, a *artworks.Artwork) (string, error)
	Update(ctx context.Context, id string, patch artworks.Patch) error
	Delete(ctx context.Context, id string) error
	// Writable is false when only the fallback document is available.
	Writable() bool
}
