package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"art-progression/internal/domain/artworks"
	"art-progression/internal/domain/progress"
	"art-progression/internal/infra/cloudinary"
	"art-progression/internal/infra/store"

	"go.uber.org/zap"
)

// Source is one image of an upload batch. Open is only called once the whole
// batch has passed validation.
type Source struct {
	Name string
	Open func(ctx context.Context) (io.ReadCloser, error)
}

type UploadRequest struct {
	Actor   string
	Date    string
	Notes   string
	Day     *int
	Sources []Source
}

type ItemResult struct {
	Name     string `json:"name"`
	ID       string `json:"id,omitempty"`
	Day      int    `json:"day,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BatchReport counts per-item outcomes. Earlier successes are never rolled
// back when a later item fails.
type BatchReport struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

type EditRequest struct {
	Date  *string
	Notes *string
	Day   *int
}

// Workflow orchestrates uploads and edits against the store. It holds no
// artwork cache: every operation starts from and ends with a fresh snapshot.
type Workflow struct {
	Store     store.Store
	Media     cloudinary.Uploader
	Numbering progress.Numbering
	Now       func() time.Time
}

func (w *Workflow) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Workflow) Snapshot(ctx context.Context) (store.Snapshot, error) {
	return w.Store.FetchAll(ctx)
}

// Stored returns the records that day numbering and duplicate checks run
// against. A writable store that is still empty serves the fallback document
// for display, but those sample records never count toward numbering.
func (w *Workflow) Stored(snap store.Snapshot) []artworks.Artwork {
	if snap.ReadOnly() && w.Store.Writable() {
		return []artworks.Artwork{}
	}
	return snap.Artworks
}

// Validate runs every check that does not need the network. existing is the
// collection returned by Stored.
func (w *Workflow) Validate(req UploadRequest, existing []artworks.Artwork) error {
	if strings.TrimSpace(req.Date) == "" {
		return invalid("Please choose a date")
	}
	if _, err := progress.ParseDate(req.Date); err != nil {
		return invalidErr(err)
	}
	if len(req.Sources) == 0 {
		return invalid("Please select at least one image")
	}
	if len(req.Sources) > 1 && !w.Numbering.MultipleImages() {
		return invalid("Explicit day numbering accepts one image per upload")
	}
	if err := w.Numbering.ValidateNew(req.Day, existing); err != nil {
		return invalidErr(err)
	}
	return nil
}

// Upload validates the batch, then uploads and persists each image on its
// own. The snapshot is refreshed after every create so the next item sees
// the records already created in this batch.
func (w *Workflow) Upload(ctx context.Context, req UploadRequest) (BatchReport, error) {
	if !w.Store.Writable() {
		return BatchReport{}, ErrStoreReadOnly
	}
	if w.Media == nil {
		return BatchReport{}, ErrMediaDisabled
	}

	snap, err := w.Store.FetchAll(ctx)
	if err != nil {
		return BatchReport{}, err
	}
	if err := w.Validate(req, w.Stored(snap)); err != nil {
		return BatchReport{}, err
	}

	date, _ := progress.ParseDate(req.Date)
	report := BatchReport{Items: make([]ItemResult, 0, len(req.Sources))}

	for _, src := range req.Sources {
		item := ItemResult{Name: src.Name}

		rec, err := w.uploadOne(ctx, src, req, date)
		if err != nil {
			item.Error = err.Error()
			report.Failed++
			report.Items = append(report.Items, item)
			zap.L().Warn("upload item failed", zap.String("name", src.Name), zap.Error(err))
			continue
		}

		item.ImageURL = rec.ImageURL
		item.Day = w.Numbering.DayOf(rec, append(append([]artworks.Artwork(nil), w.Stored(snap)...), rec))

		id, err := w.Store.Create(ctx, &rec)
		if err != nil {
			item.Error = err.Error()
			report.Failed++
			report.Items = append(report.Items, item)
			zap.L().Warn("persist item failed", zap.String("name", src.Name), zap.Error(err))
			continue
		}
		item.ID = id
		report.Succeeded++
		report.Items = append(report.Items, item)

		snap = w.refresh(ctx, snap, rec)
	}

	zap.L().Info("upload batch finished",
		zap.String("actor", req.Actor),
		zap.String("date", req.Date),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (w *Workflow) uploadOne(ctx context.Context, src Source, req UploadRequest, date time.Time) (artworks.Artwork, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return artworks.Artwork{}, err
	}
	defer rc.Close()

	url, err := w.Media.Upload(ctx, src.Name, rc)
	if err != nil {
		return artworks.Artwork{}, err
	}

	return artworks.Artwork{
		Date:       progress.FormatDate(date),
		Day:        req.Day,
		ImageURL:   url,
		Notes:      req.Notes,
		UploadedAt: w.now().UTC(),
		UploadedBy: req.Actor,
	}, nil
}

// refresh re-reads the collection after a write. If the read fails, the
// just-created record is appended so later items still account for it.
func (w *Workflow) refresh(ctx context.Context, prev store.Snapshot, created artworks.Artwork) store.Snapshot {
	snap, err := w.Store.FetchAll(ctx)
	if err != nil {
		zap.L().Warn("refresh after create failed", zap.Error(err))
		return store.Snapshot{
			Artworks: append(append([]artworks.Artwork(nil), w.Stored(prev)...), created),
			Source:   store.SourceStore,
		}
	}
	return snap
}

// Load returns the edit buffer for id.
func (w *Workflow) Load(ctx context.Context, id string) (artworks.Artwork, store.Snapshot, error) {
	snap, err := w.Store.FetchAll(ctx)
	if err != nil {
		return artworks.Artwork{}, snap, err
	}
	if snap.ReadOnly() {
		return artworks.Artwork{}, snap, ErrNotEditable
	}
	a, ok := snap.Find(id)
	if !ok {
		return artworks.Artwork{}, snap, store.ErrNotFound
	}
	return a, snap, nil
}

// Edit saves date/notes (and the explicit day in legacy mode), then reloads
// the whole collection since other records' day numbers may have shifted.
func (w *Workflow) Edit(ctx context.Context, id string, req EditRequest) (artworks.Artwork, store.Snapshot, error) {
	current, snap, err := w.Load(ctx, id)
	if err != nil {
		return artworks.Artwork{}, snap, err
	}

	patch := artworks.Patch{Notes: req.Notes}
	if req.Date != nil {
		d, err := progress.ParseDate(*req.Date)
		if err != nil {
			return artworks.Artwork{}, snap, invalidErr(err)
		}
		formatted := progress.FormatDate(d)
		patch.Date = &formatted
	}
	if req.Day != nil {
		if w.Numbering.Mode() != "explicit" {
			return artworks.Artwork{}, snap, invalid("Day numbers are derived from dates and cannot be set")
		}
		if err := w.Numbering.ValidateChange(current.ID, req.Day, snap.Artworks); err != nil {
			return artworks.Artwork{}, snap, invalidErr(err)
		}
		patch.Day = req.Day
	}
	if patch.Empty() {
		return artworks.Artwork{}, snap, invalid("Nothing to update")
	}

	if err := w.Store.Update(ctx, id, patch); err != nil {
		return artworks.Artwork{}, snap, err
	}

	snap, err = w.Store.FetchAll(ctx)
	if err != nil {
		return artworks.Artwork{}, snap, fmt.Errorf("reload after update: %w", err)
	}
	updated, ok := snap.Find(id)
	if !ok {
		return artworks.Artwork{}, snap, store.ErrNotFound
	}
	return updated, snap, nil
}

// Delete removes id and returns the reloaded collection.
func (w *Workflow) Delete(ctx context.Context, id string) (store.Snapshot, error) {
	if strings.TrimSpace(id) == "" {
		return store.Snapshot{}, ErrNotEditable
	}
	if err := w.Store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotConfigured) {
			return store.Snapshot{}, ErrNotEditable
		}
		return store.Snapshot{}, err
	}
	return w.Store.FetchAll(ctx)
}
