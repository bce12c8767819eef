package service

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/MKhiriev/go-live-sync/models"
)

var emptySnapshot = []byte("{}")

// snapshotTracker remembers the tree as it was last announced. It is kept
// serialized so later mutations of the live tree cannot leak into it.
type snapshotTracker struct {
	last   []byte
	digest uint64
}

func newSnapshotTracker() *snapshotTracker {
	s := &snapshotTracker{}
	s.Reset()
	return s
}

// BeginCycle returns a fresh copy of the baseline.
func (s *snapshotTracker) BeginCycle() (models.Tree, error) {
	return models.DecodeTree(s.last)
}

// CommitCycle makes after the new baseline.
func (s *snapshotTracker) CommitCycle(after models.Tree) error {
	if after == nil {
		s.Reset()
		return nil
	}
	b, err := json.Marshal(after)
	if err != nil {
		return fmt.Errorf("snapshot tree: %w", err)
	}
	s.last = b
	s.digest = xxhash.Sum64(b)
	return nil
}

// Digest fingerprints the baseline. Equal baselines have equal digests.
func (s *snapshotTracker) Digest() uint64 {
	return s.digest
}

// Reset forgets the baseline; the next cycle diffs against an empty tree.
func (s *snapshotTracker) Reset() {
	s.last = emptySnapshot
	s.digest = xxhash.Sum64(emptySnapshot)
}
