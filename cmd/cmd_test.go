package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"art-progression/internal/domain/progress"
	"art-progression/internal/infra/store"
	"art-progression/internal/infra/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{"artworks":[
  {"date":"2025-01-01","imageUrl":"https://img.example/1.jpg","notes":"first"},
  {"date":"2025-01-02","imageUrl":"https://img.example/2.jpg"}
]}`

func TestSeedImportsDocumentOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artworks.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	s := store.NewGormStore(storetest.OpenDB(t), path)
	ctx := context.Background()

	n, err := seed(ctx, s, path, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	snap, err := s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.SourceStore, snap.Source)
	for _, a := range snap.Artworks {
		assert.True(t, a.Editable())
	}

	_, err = seed(ctx, s, path, false)
	assert.Error(t, err)

	n, err = seed(ctx, s, path, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPrintStats(t *testing.T) {
	snap := store.Snapshot{Source: store.SourceFallback}
	path := filepath.Join(t.TempDir(), "artworks.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	records, err := store.ReadFallback(path)
	require.NoError(t, err)
	snap.Artworks = records

	var out bytes.Buffer
	printStats(&out, snap, snap.Artworks, progress.DateDerived{}, time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC))

	assert.Contains(t, out.String(), "days completed:  2")
	assert.Contains(t, out.String(), "days remaining:  363")
	assert.Contains(t, out.String(), "current streak:  2")
	assert.Contains(t, out.String(), "next day:        3")

	out.Reset()
	printStats(&out, snap, nil, progress.DateDerived{}, time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC))
	assert.Contains(t, out.String(), "total images:    2")
	assert.Contains(t, out.String(), "next day:        1")
}
