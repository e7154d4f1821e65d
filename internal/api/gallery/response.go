package gallery

import (
	"time"

	"art-progression/internal/domain/artworks"
	"art-progression/internal/domain/gallery"
	"art-progression/internal/domain/progress"
)

// ArtworkDTO is the public view of a record. Uploader identity is not exposed.
type ArtworkDTO struct {
	ID          string    `json:"id,omitempty"`
	Day         int       `json:"day"`
	Date        string    `json:"date"`
	DisplayDate string    `json:"displayDate"`
	ImageURL    string    `json:"imageUrl"`
	Notes       string    `json:"notes,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type DocumentDTO struct {
	Source   string       `json:"source"`
	Artworks []ArtworkDTO `json:"artworks"`
}

type GridDTO struct {
	Source   string         `json:"source"`
	Stats    progress.Stats `json:"stats"`
	Artworks []ArtworkDTO   `json:"artworks"`
}

type DateGroupDTO struct {
	Date        string       `json:"date"`
	DisplayDate string       `json:"displayDate"`
	Day         int          `json:"day"`
	Artworks    []ArtworkDTO `json:"artworks"`
}

type TimelineDTO struct {
	Source string         `json:"source"`
	Groups []DateGroupDTO `json:"groups"`
}

type CompareDTO struct {
	Source string      `json:"source"`
	First  *ArtworkDTO `json:"first"`
	Latest *ArtworkDTO `json:"latest"`
	// DaysApart is the day-number gap between the two images.
	DaysApart int `json:"daysApart"`
}

type LightboxDTO struct {
	View    string     `json:"view"`
	Index   int        `json:"index"`
	Total   int        `json:"total"`
	HasPrev bool       `json:"hasPrev"`
	HasNext bool       `json:"hasNext"`
	Artwork ArtworkDTO `json:"artwork"`
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
	}
}

func toArtworkDTOs(seq []artworks.Artwork, numbering progress.Numbering, all []artworks.Artwork) []ArtworkDTO {
	out := make([]ArtworkDTO, 0, len(seq))
	for _, a := range seq {
		out = append(out, toArtworkDTO(a, numbering, all))
	}
	return out
}

func toTimelineDTO(source string, groups []gallery.DateGroup, numbering progress.Numbering, all []artworks.Artwork) TimelineDTO {
	out := TimelineDTO{Source: source, Groups: make([]DateGroupDTO, 0, len(groups))}
	for _, g := range groups {
		items := toArtworkDTOs(g.Artworks, numbering, all)
		out.Groups = append(out.Groups, DateGroupDTO{
			Date:        g.Date,
			DisplayDate: progress.DisplayDate(g.Date),
			Day:         items[0].Day,
			Artworks:    items,
		})
	}
	return out
}
