package store

import (
	"context"
	"fmt"
	"time"

	"art-progression/internal/domain/artworks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormStore reads and writes the artworks table. A nil db puts it in
// fallback-only mode.
type GormStore struct {
	db           *gorm.DB
	fallbackPath string
	now          func() time.Time
}

func NewGormStore(db *gorm.DB, fallbackPath string) *GormStore {
	return &GormStore{db: db, fallbackPath: fallbackPath, now: time.Now}
}

func (s *GormStore) Writable() bool {
	return s.db != nil
}

func (s *GormStore) FetchAll(ctx context.Context) (Snapshot, error) {
	if s.db != nil {
		var rows []artworks.Artwork
		err := s.db.WithContext(ctx).
			Order("date DESC, uploaded_at DESC").
			Find(&rows).Error
		switch {
		case err != nil:
			zap.L().Warn("artwork store unavailable, falling back to static document", zap.Error(err))
		case len(rows) == 0:
			zap.L().Debug("artwork store empty, falling back to static document")
		default:
			return Snapshot{Artworks: rows, Source: SourceStore}, nil
		}
	}

	rows, err := ReadFallback(s.fallbackPath)
	if err != nil {
		zap.L().Warn("no fallback artworks", zap.String("path", s.fallbackPath), zap.Error(err))
		rows = []artworks.Artwork{}
	}
	return Snapshot{Artworks: rows, Source: SourceFallback}, nil
}

func (s *GormStore) Create(ctx context.Context, a *artworks.Artwork) (string, error) {
	if s.db == nil {
		return "", ErrNotConfigured
	}
	a.ID = ""
	a.UpdatedAt = nil
	if a.UploadedAt.IsZero() {
		a.UploadedAt = s.now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return "", fmt.Errorf("create artwork: %w", err)
	}
	return a.ID, nil
}

func (s *GormStore) Update(ctx context.Context, id string, patch artworks.Patch) error {
	if s.db == nil {
		return ErrNotConfigured
	}

	updates := map[string]interface{}{
		"updated_at": s.now().UTC(),
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.Day != nil {
		updates["day"] = *patch.Day
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}

	res := s.db.WithContext(ctx).
		Model(&artworks.Artwork{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update artwork %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	if s.db == nil {
		return ErrNotConfigured
	}

	res := s.db.WithContext(ctx).Delete(&artworks.Artwork{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete artwork %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
