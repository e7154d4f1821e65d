package store

import (
	"encoding/json"
	"fmt"
	"os"

	"art-progression/internal/domain/artworks"
)

// ReadFallback loads the static document at path. Ids are stripped so
// fallback records are never mistaken for editable ones.
func ReadFallback(path string) ([]artworks.Artwork, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback document: %w", err)
	}

	var doc artworks.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode fallback document %s: %w", path, err)
	}

	out := make([]artworks.Artwork, 0, len(doc.Artworks))
	for _, a := range doc.Artworks {
		a.ID = ""
		out = append(out, a)
	}
	return out, nil
}
