package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/models"
)

// defaultRetryDelay is the pause before a retryable statement runs again.
const defaultRetryDelay = 100 * time.Millisecond

type treeRepository struct {
	*DB
	retryDelay time.Duration
	logger     *logger.Logger
}

// NewTreeRepository returns a [TreeStore] keeping one row per tree path in
// the trees table of db. A statement failing with a retryable error runs
// once more; if it fails again the error wraps [ErrStoreUnavailable].
func NewTreeRepository(db *DB, logger *logger.Logger) TreeStore {
	return &treeRepository{
		DB:         db,
		retryDelay: defaultRetryDelay,
		logger:     logger,
	}
}

func (r *treeRepository) Load(ctx context.Context, path string) (models.Tree, error) {
	path = normalizePath(path)

	query, args, err := buildSelectTreeQuery(r.builder, path)
	if err != nil {
		return nil, err
	}

	var body string
	err = r.withRetry(ctx, "treeRepository.Load", path, func() error {
		return r.DB.QueryRowContext(ctx, query, args...).Scan(&body)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTreeNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	tree, err := models.DecodeTree([]byte(body))
	if err != nil {
		r.logger.Err(err).
			Str("func", "treeRepository.Load").
			Str("path", path).
			Msg("stored tree is not a json object")
		return nil, fmt.Errorf("%w: %w", ErrTreeCorrupted, err)
	}

	return tree, nil
}

func (r *treeRepository) Save(ctx context.Context, path string, tree models.Tree) error {
	path = normalizePath(path)

	if tree == nil {
		tree = models.NewTree()
	}
	body, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("error encoding tree: %w", err)
	}

	query, args, err := buildUpsertTreeQuery(r.builder, path, string(body))
	if err != nil {
		return err
	}

	return r.exec(ctx, "treeRepository.Save", path, query, args)
}

func (r *treeRepository) Delete(ctx context.Context, path string) error {
	path = normalizePath(path)

	query, args, err := buildDeleteTreeQuery(r.builder, path)
	if err != nil {
		return err
	}

	return r.exec(ctx, "treeRepository.Delete", path, query, args)
}

func (r *treeRepository) exec(ctx context.Context, op, path, query string, args []any) error {
	err := r.withRetry(ctx, op, path, func() error {
		_, err := r.DB.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// withRetry runs fn, and runs it once more after retryDelay when the first
// failure is retryable. A retryable failure on the second attempt is wrapped
// with ErrStoreUnavailable.
func (r *treeRepository) withRetry(ctx context.Context, op, path string, fn func() error) error {
	err := fn()
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if r.classify(err) != Retryable || ctx.Err() != nil {
		r.logger.Err(err).Str("func", op).Str("path", path).Msg("statement failed")
		return err
	}

	r.logger.Warn().Err(err).Str("func", op).Str("path", path).Msg("transient failure, retrying")
	timer := time.NewTimer(r.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, errors.Join(err, ctx.Err()))
	case <-timer.C:
	}

	err = fn()
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	r.logger.Err(err).
		Str("func", op).
		Str("path", path).
		Stringer("class", r.classify(err)).
		Msg("statement failed after retry")
	if r.classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return err
}

func (r *treeRepository) classify(err error) ErrorClassification {
	if r.errorClassificator == nil {
		return NonRetryable
	}
	return r.errorClassificator.Classify(err)
}
