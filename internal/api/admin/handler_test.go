package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"art-progression/internal/app/http/middleware"
	"art-progression/internal/domain/artworks"
	"art-progression/internal/domain/progress"
	"art-progression/internal/infra/photos"
	"art-progression/internal/infra/sessions"
	"art-progression/internal/infra/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLibrary struct {
	items map[string]photos.MediaItem
	err   error
}

func (f *fakeLibrary) ListAlbums(context.Context, string) (photos.AlbumPage, error) {
	if f.err != nil {
		return photos.AlbumPage{}, f.err
	}
	return photos.AlbumPage{Albums: []photos.Album{{ID: "al1", Title: "Sketchbook"}}}, nil
}

func (f *fakeLibrary) ListAlbumItems(context.Context, string, string) (photos.MediaPage, error) {
	if f.err != nil {
		return photos.MediaPage{}, f.err
	}
	page := photos.MediaPage{}
	for _, it := range f.items {
		page.MediaItems = append(page.MediaItems, it)
	}
	return page, nil
}

func (f *fakeLibrary) GetMediaItem(_ context.Context, id string) (photos.MediaItem, error) {
	if f.err != nil {
		return photos.MediaItem{}, f.err
	}
	it, ok := f.items[id]
	if !ok {
		return photos.MediaItem{}, errors.New("media item " + id + " not found")
	}
	return it, nil
}

func (f *fakeLibrary) Download(_ context.Context, item photos.MediaItem) ([]byte, error) {
	return []byte("pixels of " + item.ID), nil
}

type fixture struct {
	handler *Handler
	tokens  *sessions.MemoryStore
	media   *fakeMedia
	router  *gin.Engine
}

func newFixture(t *testing.T, lib *fakeLibrary) *fixture {
	t.Helper()
	media := &fakeMedia{failOn: map[string]bool{}}
	tokens := sessions.NewMemoryStore()
	h := &Handler{
		Flow:   newWorkflow(t, progress.DateDerived{}, media),
		Tokens: tokens,
		Now:    func() time.Time { return fixedNow },
	}
	if lib != nil {
		h.PhotoLibrary = func(context.Context, string) PhotoLibrary { return lib }
	}

	r := gin.New()
	g := r.Group("/admin", func(c *gin.Context) {
		c.Set(middleware.CtxEmail, "artist@example.com")
		c.Set(middleware.CtxSessionID, "sid-1")
		c.Set(middleware.CtxAdminDecision, "allowed")
		c.Next()
	}, middleware.SanitizeAndCleanInputMiddleware())
	g.GET("/session", h.GetSession)
	g.GET("/artworks", h.ListArtworks)
	g.POST("/artworks", h.UploadArtworks)
	g.POST("/artworks/photos", h.ImportPhotos)
	g.POST("/uploads/inspect", h.InspectUpload)
	g.GET("/artworks/:id", h.GetArtwork)
	g.PUT("/artworks/:id", h.UpdateArtwork)
	g.DELETE("/artworks/:id", h.DeleteArtwork)
	g.GET("/photos/albums", h.ListAlbums)
	g.GET("/photos/albums/:id/items", h.ListAlbumItems)

	return &fixture{handler: h, tokens: tokens, media: media, router: r}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartUpload(t *testing.T, fields map[string]string, files ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, name := range files {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/artworks", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadArtworksStatuses(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(multipartUpload(t, map[string]string{"date": "2025-03-05", "notes": "<b>ink</b> wash"}, "a.jpg", "b.jpg"))
	require.Equal(t, http.StatusCreated, w.Code)

	var report BatchReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Succeeded)

	f.media.failOn["d.jpg"] = true
	w = f.do(multipartUpload(t, map[string]string{"date": "2025-03-05"}, "c.jpg", "d.jpg"))
	assert.Equal(t, http.StatusMultiStatus, w.Code)

	f.media.failOn["e.jpg"] = true
	w = f.do(multipartUpload(t, map[string]string{"date": "2025-03-05"}, "e.jpg"))
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var listing ListingDTO
	w = f.do(httptest.NewRequest(http.MethodGet, "/admin/artworks", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, store.SourceStore, listing.Source)
	assert.False(t, listing.ReadOnly)
	require.Len(t, listing.Artworks, 3)
	for _, a := range listing.Artworks {
		assert.True(t, a.Editable)
		assert.Equal(t, 1, a.Day)
	}
}

func TestUploadArtworksValidation(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(multipartUpload(t, map[string]string{"date": "2025-03-05"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"validation"`)

	w = f.do(multipartUpload(t, map[string]string{"date": "2025-03-05", "day": "three"}, "a.jpg"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.media.calls)
}

func TestUpdateAndDeleteArtwork(t *testing.T) {
	f := newFixture(t, nil)
	ids := seed(t, f.handler.Flow,
		artworks.Artwork{Date: "2025-03-01", ImageURL: "https://res.example/a.jpg"},
		artworks.Artwork{Date: "2025-03-02", ImageURL: "https://res.example/b.jpg"},
	)

	w := f.do(jsonRequest(http.MethodPut, "/admin/artworks/"+ids[1], `{"date":"2025-02-27","notes":"<i>revised</i>"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Artwork  ArtworkDTO `json:"artwork"`
		Artworks ListingDTO `json:"artworks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Artwork.Day)
	assert.Equal(t, "revised", body.Artwork.Notes)
	require.Len(t, body.Artworks.Artworks, 2)
	assert.Equal(t, 3, body.Artworks.Artworks[0].Day)

	w = f.do(httptest.NewRequest(http.MethodGet, "/admin/artworks/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(httptest.NewRequest(http.MethodDelete, "/admin/artworks/"+ids[0], nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(httptest.NewRequest(http.MethodGet, "/admin/artworks/"+ids[0], nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFallbackSnapshotIsReadOnly(t *testing.T) {
	f := newFixture(t, nil)
	f.handler.Flow.Store = store.NewGormStore(nil, filepath.Join(t.TempDir(), "none.json"))

	w := f.do(jsonRequest(http.MethodPut, "/admin/artworks/anything", `{"notes":"x"}`))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"read_only"`)

	w = f.do(multipartUpload(t, map[string]string{"date": "2025-03-05"}, "a.jpg"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var sess SessionDTO
	w = f.do(httptest.NewRequest(http.MethodGet, "/admin/session", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.False(t, sess.Capabilities["writable"].Enabled)
	assert.False(t, sess.Capabilities["upload"].Enabled)
	assert.NotEmpty(t, sess.Capabilities["upload"].Reason)
}

func TestSessionCapabilities(t *testing.T) {
	f := newFixture(t, &fakeLibrary{})

	var sess SessionDTO
	w := f.do(httptest.NewRequest(http.MethodGet, "/admin/session", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.Equal(t, "artist@example.com", sess.Email)
	assert.False(t, sess.InsecureOpenAdmin)
	assert.Equal(t, "date", sess.Numbering)
	assert.True(t, sess.Capabilities["upload"].Enabled)
	assert.False(t, sess.Capabilities["photos"].Enabled, "no cached token yet")

	require.NoError(t, f.tokens.Put(context.Background(), "sid-1", "access", time.Hour))
	w = f.do(httptest.NewRequest(http.MethodGet, "/admin/session", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.True(t, sess.Capabilities["photos"].Enabled)
}

func TestPhotoLibraryNeedsToken(t *testing.T) {
	f := newFixture(t, &fakeLibrary{})

	w := f.do(httptest.NewRequest(http.MethodGet, "/admin/photos/albums", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"reauth":true`)
}

func TestPhotoLibraryDisabled(t *testing.T) {
	f := newFixture(t, nil)

	w := f.do(httptest.NewRequest(http.MethodGet, "/admin/photos/albums", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPhotoLibraryExpiredTokenAsksForReauth(t *testing.T) {
	f := newFixture(t, &fakeLibrary{err: photos.ErrReauthRequired})
	require.NoError(t, f.tokens.Put(context.Background(), "sid-1", "stale", time.Hour))

	w := f.do(httptest.NewRequest(http.MethodGet, "/admin/photos/albums/al1/items", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"reauth":true`)
}

func TestImportPhotos(t *testing.T) {
	lib := &fakeLibrary{items: map[string]photos.MediaItem{
		"m1": {ID: "m1", Filename: "m1.jpg", BaseURL: "https://lh3.example/m1"},
		"m2": {ID: "m2", Filename: "m2.jpg", BaseURL: "https://lh3.example/m2"},
	}}
	f := newFixture(t, lib)
	require.NoError(t, f.tokens.Put(context.Background(), "sid-1", "access", time.Hour))

	w := f.do(jsonRequest(http.MethodPost, "/admin/artworks/photos",
		`{"mediaItemIds":["m1","gone","m2"],"date":"2025-03-05","notes":"from the phone"}`))
	require.Equal(t, http.StatusMultiStatus, w.Code)

	var report BatchReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, report.Items[1].Error, "gone")
	names := []string{}
	for _, it := range report.Items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"m1", "gone", "m2"}, names)
}

func TestInspectUploadDefaultsToToday(t *testing.T) {
	f := newFixture(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "scan.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\n not really"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads/inspect", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var out InspectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "2025-03-05", out.SuggestedDate)
	assert.Equal(t, "today", out.DateSource)
	assert.True(t, out.IsImage)
	assert.Equal(t, 1, out.SuggestedDay)
}

func TestEmptyStoreSuggestsDayOne(t *testing.T) {
	f := newFixture(t, nil)
	f.handler.Flow = newWorkflowOverSamples(t, progress.DateDerived{}, f.media)

	var listing ListingDTO
	w := f.do(httptest.NewRequest(http.MethodGet, "/admin/artworks", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.True(t, listing.ReadOnly)
	assert.Len(t, listing.Artworks, 2)
	assert.Equal(t, 1, listing.SuggestedDay)

	up := f.do(multipartUpload(t, map[string]string{"date": "2025-03-05"}, "first.jpg"))
	require.Equal(t, http.StatusCreated, up.Code)

	var report BatchReport
	require.NoError(t, json.Unmarshal(up.Body.Bytes(), &report))
	require.Len(t, report.Items, 1)
	assert.Equal(t, 1, report.Items[0].Day)
}
