package admin

// ---------- requests

type UpdateArtworkRequest struct {
	Date  *string `json:"date"`
	Notes *string `json:"notes"`
	Day   *int    `json:"day"`
}

type ImportPhotosRequest struct {
	MediaItemIDs []string `json:"mediaItemIds" binding:"required"`
	Date         string   `json:"date"`
	Notes        string   `json:"notes"`
	Day          *int     `json:"day"`
}
