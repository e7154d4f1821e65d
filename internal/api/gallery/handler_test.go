package gallery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"art-progression/internal/domain/artworks"
	"art-progression/internal/domain/progress"
	"art-progression/internal/infra/store"
	"art-progression/internal/infra/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var today = time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)

func seeded(t *testing.T, records ...artworks.Artwork) *Handler {
	t.Helper()
	s := store.NewGormStore(storetest.OpenDB(t), filepath.Join(t.TempDir(), "missing.json"))
	for i := range records {
		_, err := s.Create(context.Background(), &records[i])
		require.NoError(t, err)
	}
	return &Handler{Store: s, Numbering: progress.DateDerived{}, Now: func() time.Time { return today }}
}

func at(date string, minute int) artworks.Artwork {
	return artworks.Artwork{
		Date:       date,
		ImageURL:   "https://img.example/" + date + ".jpg",
		UploadedAt: time.Date(2025, 3, 5, 12, minute, 0, 0, time.UTC),
		UploadedBy: "artist@example.com",
	}
}

func routes(h *Handler) *gin.Engine {
	r := gin.New()
	r.GET("/artworks", h.GetDocument)
	r.GET("/gallery/grid", h.GetGrid)
	r.GET("/gallery/timeline", h.GetTimeline)
	r.GET("/gallery/compare", h.GetCompare)
	r.GET("/gallery/stats", h.GetStats)
	r.GET("/gallery/:view/:index", h.GetLightbox)
	return r
}

func get(t *testing.T, r *gin.Engine, path string, out interface{}) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestGridOrderAndDays(t *testing.T) {
	r := routes(seeded(t, at("2025-03-01", 0), at("2025-03-03", 1), at("2025-03-03", 2), at("2025-03-04", 3)))

	var grid GridDTO
	require.Equal(t, http.StatusOK, get(t, r, "/gallery/grid", &grid))

	assert.Equal(t, store.SourceStore, grid.Source)
	require.Len(t, grid.Artworks, 4)
	days := []int{}
	dates := []string{}
	for _, a := range grid.Artworks {
		days = append(days, a.Day)
		dates = append(dates, a.Date)
	}
	assert.Equal(t, []string{"2025-03-04", "2025-03-03", "2025-03-03", "2025-03-01"}, dates)
	assert.Equal(t, []int{4, 3, 3, 1}, days)
	assert.True(t, grid.Artworks[1].UploadedAt.After(grid.Artworks[2].UploadedAt))

	assert.Equal(t, progress.Stats{DaysCompleted: 3, DaysRemaining: 362, CurrentStreak: 2, TotalImages: 4}, grid.Stats)
}

func TestGridHidesUploader(t *testing.T) {
	r := routes(seeded(t, at("2025-03-01", 0)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gallery/grid", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "artist@example.com")
}

func TestTimelineGroupsByDate(t *testing.T) {
	r := routes(seeded(t, at("2025-03-03", 2), at("2025-03-01", 0), at("2025-03-03", 1)))

	var tl TimelineDTO
	require.Equal(t, http.StatusOK, get(t, r, "/gallery/timeline", &tl))

	require.Len(t, tl.Groups, 2)
	assert.Equal(t, "2025-03-01", tl.Groups[0].Date)
	assert.Equal(t, 1, tl.Groups[0].Day)
	assert.Equal(t, "2025-03-03", tl.Groups[1].Date)
	assert.Equal(t, 3, tl.Groups[1].Day)
	assert.Equal(t, "March 3, 2025", tl.Groups[1].DisplayDate)
	require.Len(t, tl.Groups[1].Artworks, 2)
	assert.True(t, tl.Groups[1].Artworks[0].UploadedAt.Before(tl.Groups[1].Artworks[1].UploadedAt))
}

func TestCompare(t *testing.T) {
	r := routes(seeded(t, at("2025-03-04", 0), at("2025-02-20", 1), at("2025-03-01", 2)))

	var cmp CompareDTO
	require.Equal(t, http.StatusOK, get(t, r, "/gallery/compare", &cmp))
	require.NotNil(t, cmp.First)
	require.NotNil(t, cmp.Latest)
	assert.Equal(t, "2025-02-20", cmp.First.Date)
	assert.Equal(t, "2025-03-04", cmp.Latest.Date)
	assert.Equal(t, 1, cmp.First.Day)
	assert.Equal(t, 13, cmp.Latest.Day)
	assert.Equal(t, 12, cmp.DaysApart)
}

func TestCompareEmptyFallback(t *testing.T) {
	h := seeded(t)

	var cmp CompareDTO
	require.Equal(t, http.StatusOK, get(t, routes(h), "/gallery/compare", &cmp))
	assert.Equal(t, store.SourceFallback, cmp.Source)
	assert.Nil(t, cmp.First)
	assert.Nil(t, cmp.Latest)
}

func TestLightboxClamps(t *testing.T) {
	r := routes(seeded(t, at("2025-03-01", 0), at("2025-03-02", 1), at("2025-03-03", 2)))

	var lb LightboxDTO
	require.Equal(t, http.StatusOK, get(t, r, "/gallery/grid/0", &lb))
	assert.Equal(t, "2025-03-03", lb.Artwork.Date)
	assert.False(t, lb.HasPrev)
	assert.True(t, lb.HasNext)

	require.Equal(t, http.StatusOK, get(t, r, "/gallery/grid/99", &lb))
	assert.Equal(t, 2, lb.Index)
	assert.Equal(t, "2025-03-01", lb.Artwork.Date)
	assert.True(t, lb.HasPrev)
	assert.False(t, lb.HasNext)

	require.Equal(t, http.StatusOK, get(t, r, "/gallery/timeline/-4", &lb))
	assert.Equal(t, 0, lb.Index)
	assert.Equal(t, "2025-03-01", lb.Artwork.Date)
	assert.Equal(t, 3, lb.Total)
}

func TestLightboxErrors(t *testing.T) {
	r := routes(seeded(t, at("2025-03-01", 0)))

	assert.Equal(t, http.StatusNotFound, get(t, r, "/gallery/compare/0", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/gallery/grid/first", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/gallery/grid/0?step=next", nil))
}

func TestLightboxSteps(t *testing.T) {
	r := routes(seeded(t, at("2025-03-01", 0), at("2025-03-02", 1), at("2025-03-03", 2)))

	var lb LightboxDTO
	require.Equal(t, http.StatusOK, get(t, r, "/gallery/grid/0?step=1", &lb))
	assert.Equal(t, 1, lb.Index)
	assert.Equal(t, "2025-03-02", lb.Artwork.Date)
	assert.True(t, lb.HasPrev)
	assert.True(t, lb.HasNext)

	require.Equal(t, http.StatusOK, get(t, r, "/gallery/grid/2?step=1", &lb))
	assert.Equal(t, 2, lb.Index, "no wrap past the last image")
	assert.False(t, lb.HasNext)

	require.Equal(t, http.StatusOK, get(t, r, "/gallery/timeline/0?step=-1", &lb))
	assert.Equal(t, 0, lb.Index)
	assert.Equal(t, "2025-03-01", lb.Artwork.Date)
	assert.False(t, lb.HasPrev)
}

func TestDocumentFromFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artworks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"artworks":[
		{"id":"x1","date":"2025-01-01","imageUrl":"https://img.example/a.jpg","notes":"first light"},
		{"date":"2025-01-03","imageUrl":"https://img.example/b.jpg"}
	]}`), 0o644))

	h := &Handler{Store: store.NewGormStore(nil, path), Numbering: progress.DateDerived{}, Now: func() time.Time { return today }}

	var doc DocumentDTO
	require.Equal(t, http.StatusOK, get(t, routes(h), "/artworks", &doc))
	assert.Equal(t, store.SourceFallback, doc.Source)
	require.Len(t, doc.Artworks, 2)
	for _, a := range doc.Artworks {
		assert.Empty(t, a.ID)
	}
	assert.Equal(t, 1, doc.Artworks[0].Day)
	assert.Equal(t, 3, doc.Artworks[1].Day)
	assert.Equal(t, "first light", doc.Artworks[0].Notes)
}

func TestStatsEmptyCollection(t *testing.T) {
	var body struct {
		Source string         `json:"source"`
		Stats  progress.Stats `json:"stats"`
	}
	require.Equal(t, http.StatusOK, get(t, routes(seeded(t)), "/gallery/stats", &body))
	assert.Equal(t, progress.Stats{DaysRemaining: 365}, body.Stats)
}
