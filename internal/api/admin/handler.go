package admin

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"art-progression/internal/app/http/middleware"
	"art-progression/internal/domain/access"
	"art-progression/internal/domain/progress"
	"art-progression/internal/infra/cloudinary"
	"art-progression/internal/infra/exifdate"
	"art-progression/internal/infra/photos"
	"art-progression/internal/infra/sessions"
	"art-progression/internal/infra/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadMemory = 32 << 20

// PhotoLibrary is the subset of the photo library client the admin uses.
type PhotoLibrary interface {
	ListAlbums(ctx context.Context, pageToken string) (photos.AlbumPage, error)
	ListAlbumItems(ctx context.Context, albumID, pageToken string) (photos.MediaPage, error)
	GetMediaItem(ctx context.Context, id string) (photos.MediaItem, error)
	Download(ctx context.Context, item photos.MediaItem) ([]byte, error)
}

type Handler struct {
	Flow   *Workflow
	Tokens sessions.TokenStore
	// PhotoLibrary is nil when the photo library integration is disabled.
	PhotoLibrary func(ctx context.Context, accessToken string) PhotoLibrary
	Now          func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// GET /admin/session
func (h *Handler) GetSession(c *gin.Context) {
	decision := access.Decision(c.GetString(middleware.CtxAdminDecision))

	caps := map[string]CapabilityDTO{
		"writable": {Enabled: true},
		"upload":   {Enabled: true},
		"photos":   {Enabled: true},
	}
	if !h.Flow.Store.Writable() {
		caps["writable"] = CapabilityDTO{Reason: ErrStoreReadOnly.Error()}
		caps["upload"] = CapabilityDTO{Reason: ErrStoreReadOnly.Error()}
	} else if h.Flow.Media == nil {
		caps["upload"] = CapabilityDTO{Reason: ErrMediaDisabled.Error()}
	}
	switch {
	case h.PhotoLibrary == nil:
		caps["photos"] = CapabilityDTO{Reason: ErrPhotosDisabled.Error()}
	case !caps["upload"].Enabled:
		caps["photos"] = caps["upload"]
	default:
		tok, err := h.Tokens.Get(c.Request.Context(), c.GetString(middleware.CtxSessionID))
		if err != nil || tok == "" {
			caps["photos"] = CapabilityDTO{Reason: photos.ErrReauthRequired.Error()}
		}
	}

	c.JSON(http.StatusOK, SessionDTO{
		Email:             c.GetString(middleware.CtxEmail),
		Name:              c.GetString(middleware.CtxName),
		Access:            string(decision),
		InsecureOpenAdmin: decision == access.DecisionOpen,
		Numbering:         h.Flow.Numbering.Mode(),
		Capabilities:      caps,
	})
}

// GET /admin/artworks
func (h *Handler) ListArtworks(c *gin.Context) {
	snap, err := h.Flow.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingDTO(snap, h.Flow.Stored(snap), h.Flow.Numbering, h.now()))
}

// GET /admin/artworks/:id
func (h *Handler) GetArtwork(c *gin.Context) {
	a, snap, err := h.Flow.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toArtworkDTO(a, h.Flow.Numbering, snap.Artworks))
}

// POST /admin/artworks (multipart: images[], date, notes, day)
func (h *Handler) UploadArtworks(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload form", "kind": "validation"})
		return
	}
	form := c.Request.MultipartForm

	day, err := parseOptionalDay(c.PostForm("day"))
	if err != nil {
		respondError(c, err)
		return
	}

	files := append([]*multipart.FileHeader{}, form.File["images"]...)
	files = append(files, form.File["image"]...)

	sources := make([]Source, 0, len(files))
	for _, fh := range files {
		fh := fh
		sources = append(sources, Source{
			Name: fh.Filename,
			Open: func(context.Context) (io.ReadCloser, error) { return fh.Open() },
		})
	}

	report, err := h.Flow.Upload(c.Request.Context(), UploadRequest{
		Actor:   c.GetString(middleware.CtxEmail),
		Date:    c.PostForm("date"),
		Notes:   middleware.SanitizeText(c.PostForm("notes")),
		Day:     day,
		Sources: sources,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(batchStatus(report), report)
}

// POST /admin/uploads/inspect (multipart: image)
func (h *Handler) InspectUpload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an image", "kind": "validation"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image", "kind": "validation"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadMemory))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image", "kind": "validation"})
		return
	}

	out := InspectDTO{
		SuggestedDate: progress.FormatDate(progress.CalendarDay(h.now())),
		DateSource:    "today",
		IsImage:       exifdate.IsImage(content),
	}
	if taken, ok := exifdate.Taken(content); ok {
		out.SuggestedDate = progress.FormatDate(progress.CalendarDay(taken))
		out.DateSource = "exif"
	}

	snap, err := h.Flow.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out.SuggestedDay = h.Flow.Numbering.Suggest(out.SuggestedDate, h.Flow.Stored(snap))

	c.JSON(http.StatusOK, out)
}

// PUT /admin/artworks/:id
func (h *Handler) UpdateArtwork(c *gin.Context) {
	var req UpdateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
		return
	}
	updated, snap, err := h.Flow.Edit(c.Request.Context(), c.Param("id"), EditRequest{
		Date:  req.Date,
		Notes: req.Notes,
		Day:   req.Day,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	zap.L().Info("artwork updated", zap.String("id", updated.ID), zap.String("actor", c.GetString(middleware.CtxEmail)))
	c.JSON(http.StatusOK, gin.H{
		"artwork":  toArtworkDTO(updated, h.Flow.Numbering, snap.Artworks),
		"artworks": toListingDTO(snap, h.Flow.Stored(snap), h.Flow.Numbering, h.now()),
	})
}

// DELETE /admin/artworks/:id
func (h *Handler) DeleteArtwork(c *gin.Context) {
	id := c.Param("id")
	snap, err := h.Flow.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	zap.L().Info("artwork deleted", zap.String("id", id), zap.String("actor", c.GetString(middleware.CtxEmail)))
	c.JSON(http.StatusOK, gin.H{
		"status":   "deleted",
		"artworks": toListingDTO(snap, h.Flow.Stored(snap), h.Flow.Numbering, h.now()),
	})
}

// batchStatus is 201 when everything landed, 207 on partial success and 502
// when every item failed.
func batchStatus(r BatchReport) int {
	switch {
	case r.Failed == 0:
		return http.StatusCreated
	case r.Succeeded > 0:
		return http.StatusMultiStatus
	default:
		return http.StatusBadGateway
	}
}

func parseOptionalDay(v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, invalid("Day must be a whole number")
	}
	return &n, nil
}

func respondError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		status := http.StatusBadRequest
		if errors.Is(err, progress.ErrDuplicateDay) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": vErr.Error(), "kind": "validation"})
	case errors.Is(err, ErrNotEditable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "read_only"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
	case errors.Is(err, ErrStoreReadOnly),
		errors.Is(err, ErrMediaDisabled),
		errors.Is(err, ErrPhotosDisabled),
		errors.Is(err, store.ErrNotConfigured),
		errors.Is(err, cloudinary.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "kind": "configuration"})
	case errors.Is(err, photos.ErrReauthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "reauth": true})
	default:
		zap.L().Error("admin operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "kind": "transient"})
	}
}
