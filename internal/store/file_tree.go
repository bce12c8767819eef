package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/models"
)

// memoryDSN keeps the file store purely in memory.
const memoryDSN = ":memory:"

// fileTreeStorage keeps every tree inside one JSON document and writes the
// whole document back to disk after each change. Paths address nested
// objects of that document.
type fileTreeStorage struct {
	path     string
	inMemory bool
	logger   *logger.Logger

	mu   sync.RWMutex
	root models.Tree
}

// NewFileTreeStorage opens (or creates on first save) the JSON document at
// dbPath. An empty dbPath or ":memory:" keeps the document in memory only.
func NewFileTreeStorage(dbPath string, logger *logger.Logger) (TreeStore, error) {
	if dbPath == "" {
		dbPath = memoryDSN
	}

	s := &fileTreeStorage{
		path:     dbPath,
		inMemory: dbPath == memoryDSN || dbPath == "memory",
		logger:   logger,
		root:     models.NewTree(),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileTreeStorage) Load(_ context.Context, path string) (models.Tree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, err := s.root.Get(path)
	if errors.Is(err, models.ErrPathNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTreeNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	tree, ok := models.AsTree(value)
	if !ok {
		return nil, fmt.Errorf("%w: value at %q is %T", ErrTreeCorrupted, path, value)
	}
	return tree.Clone()
}

func (s *fileTreeStorage) Save(_ context.Context, path string, tree models.Tree) error {
	if tree == nil {
		tree = models.NewTree()
	}
	clone, err := tree.Clone()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(models.SplitPath(path)) == 0 {
		s.root = clone
	} else if err = s.root.Set(path, map[string]any(clone)); err != nil {
		return err
	}

	return s.persist()
}

func (s *fileTreeStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root.Delete(path)
	return s.persist()
}

func (s *fileTreeStorage) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read tree storage file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	root, err := models.DecodeTree(data)
	if err != nil {
		return fmt.Errorf("decode tree storage file: %w", err)
	}
	s.root = root

	return nil
}

func (s *fileTreeStorage) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create tree storage dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.root, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tree storage: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		s.logger.Err(err).
			Str("func", "fileTreeStorage.persist").
			Str("file", s.path).
			Msg("failed to write tree storage file")
		return fmt.Errorf("write tree storage file: %w", err)
	}

	return nil
}
