package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/models"
)

func TestFileTreeStorage_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileTreeStorage("", logger.Nop())
	require.NoError(t, err)

	_, err = s.Load(ctx, "a/b")
	require.ErrorIs(t, err, ErrTreeNotFound)

	require.NoError(t, s.Save(ctx, "a/b", models.Tree{"x": 1}))

	tree, err := s.Load(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, models.Tree{"x": float64(1)}, tree)

	parent, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.Tree{"b": map[string]any{"x": float64(1)}}, parent)
}

func TestFileTreeStorage_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileTreeStorage(memoryDSN, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "a", models.Tree{"x": "1"}))

	tree, err := s.Load(ctx, "a")
	require.NoError(t, err)
	tree["x"] = "changed"

	again, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", again["x"])
}

func TestFileTreeStorage_NonObjectIsCorrupted(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileTreeStorage(memoryDSN, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "a", models.Tree{"leaf": 42}))

	_, err = s.Load(ctx, "a/leaf")
	assert.ErrorIs(t, err, ErrTreeCorrupted)
}

func TestFileTreeStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileTreeStorage(memoryDSN, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "a/b", models.Tree{"x": 1}))
	require.NoError(t, s.Delete(ctx, "a/b"))
	require.NoError(t, s.Delete(ctx, "never/there"))

	_, err = s.Load(ctx, "a/b")
	assert.ErrorIs(t, err, ErrTreeNotFound)

	parent, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, parent)
}

func TestFileTreeStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "nested", "db.json")

	s, err := NewFileTreeStorage(file, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "root", models.Tree{"msg": "hi"}))

	reopened, err := NewFileTreeStorage(file, logger.Nop())
	require.NoError(t, err)

	tree, err := reopened.Load(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, models.Tree{"msg": "hi"}, tree)
}

func TestFileTreeStorage_SaveRootReplacesDocument(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileTreeStorage(memoryDSN, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "a", models.Tree{"x": 1}))
	require.NoError(t, s.Save(ctx, "", models.Tree{"only": true}))

	root, err := s.Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, models.Tree{"only": true}, root)
}

func TestNewFileTreeStorage_BadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(file, []byte("not json"), 0o600))

	_, err := NewFileTreeStorage(file, logger.Nop())
	assert.Error(t, err)
}
