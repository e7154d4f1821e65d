package artworks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Artwork is one dated image. Its day number is never stored in the
// date-derived mode; Day is only populated by the explicit numbering mode.
type Artwork struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id,omitempty"`

	Date string `gorm:"type:varchar(10);not null;index" json:"date"`
	Day  *int   `gorm:"index" json:"day,omitempty"`

	ImageURL string `gorm:"column:image_url;not null" json:"imageUrl"`
	Notes    string `json:"notes,omitempty"`

	UploadedAt time.Time  `gorm:"not null" json:"uploadedAt"`
	UpdatedAt  *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
	UploadedBy string     `json:"uploadedBy,omitempty"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.UploadedAt.IsZero() {
		a.UploadedAt = time.Now().UTC()
	}
	return nil
}

// Editable is false for records read from the fallback document.
func (a Artwork) Editable() bool {
	return a.ID != ""
}

// Patch is a partial update; nil fields are left alone.
type Patch struct {
	Date     *string
	Notes    *string
	Day      *int
	ImageURL *string
}

func (p Patch) Empty() bool {
	return p.Date == nil && p.Notes == nil && p.Day == nil && p.ImageURL == nil
}

// Document is the shape of the static fallback file.
type Document struct {
	Artworks []Artwork `json:"artworks"`
}
