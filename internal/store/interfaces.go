package store

import (
	"context"

	"github.com/MKhiriev/go-live-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TreeStore persists trees under slash separated key paths.
type TreeStore interface {
	// Load returns the tree stored at path, or [ErrTreeNotFound].
	Load(ctx context.Context, path string) (models.Tree, error)
	// Save stores tree at path, replacing whatever was there.
	Save(ctx context.Context, path string, tree models.Tree) error
	// Delete removes path and everything below it. Missing paths are not an
	// error.
	Delete(ctx context.Context, path string) error
}

// ErrorClassification tells whether a failed database operation may succeed
// on a later attempt.
type ErrorClassification int

const (
	// NonRetryable failures are returned to the caller as they are.
	NonRetryable ErrorClassification = iota
	// Retryable failures are attempted once more before the store gives up
	// with [ErrStoreUnavailable].
	Retryable
)

func (c ErrorClassification) String() string {
	if c == Retryable {
		return "retryable"
	}
	return "non-retryable"
}

// ErrorClassificator decides whether a failed database operation may succeed
// on a later attempt.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
