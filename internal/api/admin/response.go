package admin

import (
	"time"

	"art-progression/internal/domain/artworks"
	"art-progression/internal/domain/gallery"
	"art-progression/internal/domain/progress"
	"art-progression/internal/infra/photos"
	"art-progression/internal/infra/store"
)

type ArtworkDTO struct {
	ID          string     `json:"id,omitempty"`
	Day         int        `json:"day"`
	Date        string     `json:"date"`
	DisplayDate string     `json:"displayDate"`
	ImageURL    string     `json:"imageUrl"`
	Notes       string     `json:"notes,omitempty"`
	UploadedAt  time.Time  `json:"uploadedAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	UploadedBy  string     `json:"uploadedBy,omitempty"`
	Editable    bool       `json:"editable"`
}

type ListingDTO struct {
	Source       string         `json:"source"`
	ReadOnly     bool           `json:"readOnly"`
	Numbering    string         `json:"numbering"`
	SuggestedDay int            `json:"suggestedDay"`
	Stats        progress.Stats `json:"stats"`
	Artworks     []ArtworkDTO   `json:"artworks"`
}

type CapabilityDTO struct {
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

type SessionDTO struct {
	Email             string                   `json:"email"`
	Name              string                   `json:"name,omitempty"`
	Access            string                   `json:"access"`
	InsecureOpenAdmin bool                     `json:"insecureOpenAdmin"`
	Numbering         string                   `json:"numbering"`
	Capabilities      map[string]CapabilityDTO `json:"capabilities"`
}

type InspectDTO struct {
	SuggestedDate string `json:"suggestedDate"`
	DateSource    string `json:"dateSource"` // "exif" | "today"
	SuggestedDay  int    `json:"suggestedDay"`
	IsImage       bool   `json:"isImage"`
}

type MediaItemDTO struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	ThumbnailURL string `json:"thumbnailUrl"`
	TakenOn      string `json:"takenOn,omitempty"`
}

type MediaPageDTO struct {
	Items         []MediaItemDTO `json:"items"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

func toArtworkDTO(a artworks.Artwork, numbering progress.Numbering, all []artworks.Artwork) ArtworkDTO {
	return ArtworkDTO{
		ID:          a.ID,
		Day:         numbering.DayOf(a, all),
		Date:        a.Date,
		DisplayDate: progress.DisplayDate(a.Date),
		ImageURL:    a.ImageURL,
		Notes:       a.Notes,
		UploadedAt:  a.UploadedAt,
		UpdatedAt:   a.UpdatedAt,
		UploadedBy:  a.UploadedBy,
		Editable:    a.Editable(),
	}
}

// toListingDTO renders snap; the suggested day is computed over stored only.
func toListingDTO(snap store.Snapshot, stored []artworks.Artwork, numbering progress.Numbering, today time.Time) ListingDTO {
	out := ListingDTO{
		Source:       snap.Source,
		ReadOnly:     snap.ReadOnly(),
		Numbering:    numbering.Mode(),
		SuggestedDay: numbering.Suggest(progress.FormatDate(progress.CalendarDay(today)), stored),
		Stats:        progress.ComputeStats(snap.Artworks, today),
		Artworks:     make([]ArtworkDTO, 0, len(snap.Artworks)),
	}
	for _, a := range gallery.SortGrid(snap.Artworks) {
		out.Artworks = append(out.Artworks, toArtworkDTO(a, numbering, snap.Artworks))
	}
	return out
}

func toMediaPageDTO(page photos.MediaPage) MediaPageDTO {
	out := MediaPageDTO{
		Items:         make([]MediaItemDTO, 0, len(page.MediaItems)),
		NextPageToken: page.NextPageToken,
	}
	for _, m := range page.MediaItems {
		dto := MediaItemDTO{
			ID:           m.ID,
			Filename:     m.Filename,
			ThumbnailURL: m.ThumbnailURL(256),
		}
		if !m.MediaMetadata.CreationTime.IsZero() {
			dto.TakenOn = progress.FormatDate(progress.CalendarDay(m.MediaMetadata.CreationTime))
		}
		out.Items = append(out.Items, dto)
	}
	return out
}
