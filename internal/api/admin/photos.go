package admin

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"art-progression/internal/app/http/middleware"
	"art-progression/internal/infra/photos"

	"github.com/gin-gonic/gin"
)

// library builds a photo library client for the caller's session.
func (h *Handler) library(c *gin.Context) (PhotoLibrary, error) {
	if h.PhotoLibrary == nil {
		return nil, ErrPhotosDisabled
	}
	tok, err := h.Tokens.Get(c.Request.Context(), c.GetString(middleware.CtxSessionID))
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, photos.ErrReauthRequired
	}
	return h.PhotoLibrary(c.Request.Context(), tok), nil
}

// GET /admin/photos/albums
func (h *Handler) ListAlbums(c *gin.Context) {
	lib, err := h.library(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := lib.ListAlbums(c.Request.Context(), c.Query("pageToken"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /admin/photos/albums/:id/items
func (h *Handler) ListAlbumItems(c *gin.Context) {
	lib, err := h.library(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := lib.ListAlbumItems(c.Request.Context(), c.Param("id"), c.Query("pageToken"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMediaPageDTO(page))
}

// POST /admin/artworks/photos
func (h *Handler) ImportPhotos(c *gin.Context) {
	var req ImportPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}

	lib, err := h.library(c)
	if err != nil {
		respondError(c, err)
		return
	}

	sources := make([]Source, 0, len(req.MediaItemIDs))
	for _, id := range req.MediaItemIDs {
		id := id
		sources = append(sources, Source{
			Name: id,
			Open: func(ctx context.Context) (io.ReadCloser, error) {
				item, err := lib.GetMediaItem(ctx, id)
				if err != nil {
					return nil, err
				}
				data, err := lib.Download(ctx, item)
				if err != nil {
					return nil, err
				}
				return io.NopCloser(bytes.NewReader(data)), nil
			},
		})
	}

	report, err := h.Flow.Upload(c.Request.Context(), UploadRequest{
		Actor:   c.GetString(middleware.CtxEmail),
		Date:    req.Date,
		Notes:   req.Notes,
		Day:     req.Day,
		Sources: sources,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(batchStatus(report), report)
}
