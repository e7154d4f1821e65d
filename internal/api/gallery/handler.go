package gallery

import (
	"net/http"
	"strconv"
	"time"

	"art-progression/internal/domain/gallery"
	"art-progression/internal/domain/progress"
	"art-progression/internal/infra/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the public, read-only gallery. Every request reads a fresh
// snapshot from the store.
type Handler struct {
	Store     store.Store
	Numbering progress.Numbering
	Now       func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) snapshot(c *gin.Context) (store.Snapshot, bool) {
	snap, err := h.Store.FetchAll(c.Request.Context())
	if err != nil {
		zap.L().Error("gallery read failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load artworks"})
		return snap, false
	}
	return snap, true
}

// GET /artworks
func (h *Handler) GetDocument(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, DocumentDTO{
		Source:   snap.Source,
		Artworks: toArtworkDTOs(snap.Artworks, h.Numbering, snap.Artworks),
	})
}

// GET /gallery/grid
func (h *Handler) GetGrid(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, GridDTO{
		Source:   snap.Source,
		Stats:    progress.ComputeStats(snap.Artworks, h.now()),
		Artworks: toArtworkDTOs(gallery.SortGrid(snap.Artworks), h.Numbering, snap.Artworks),
	})
}

// GET /gallery/timeline
func (h *Handler) GetTimeline(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toTimelineDTO(snap.Source, gallery.GroupTimeline(snap.Artworks), h.Numbering, snap.Artworks))
}

// GET /gallery/compare
func (h *Handler) GetCompare(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	out := CompareDTO{Source: snap.Source}
	if first, latest, found := gallery.Compare(snap.Artworks); found {
		f := toArtworkDTO(first, h.Numbering, snap.Artworks)
		l := toArtworkDTO(latest, h.Numbering, snap.Artworks)
		out.First, out.Latest = &f, &l
		out.DaysApart = l.Day - f.Day
	}
	c.JSON(http.StatusOK, out)
}

// GET /gallery/stats
func (h *Handler) GetStats(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source": snap.Source,
		"stats":  progress.ComputeStats(snap.Artworks, h.now()),
	})
}

// GET /gallery/:view/:index?step=
//
// An optional step moves prev (-1) or next (+1) from index. Out-of-range
// results are clamped to the ends of the sequence.
func (h *Handler) GetLightbox(c *gin.Context) {
	view := c.Param("view")
	if view != gallery.ViewGrid && view != gallery.ViewTimeline {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown view"})
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index must be a whole number"})
		return
	}
	step := 0
	if raw := c.Query("step"); raw != "" {
		if step, err = strconv.Atoi(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Step must be a whole number"})
			return
		}
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	seq := gallery.Sequence(view, snap.Artworks)
	pos, ok := gallery.Navigate(len(seq), index, step)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No artworks yet"})
		return
	}

	c.JSON(http.StatusOK, LightboxDTO{
		View:    view,
		Index:   pos.Index,
		Total:   len(seq),
		HasPrev: pos.HasPrev,
		HasNext: pos.HasNext,
		Artwork: toArtworkDTO(seq[pos.Index], h.Numbering, snap.Artworks),
	})
}
