package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-live-sync/internal/config"
	"github.com/MKhiriev/go-live-sync/internal/logger"
)

// Storages groups the storage backends used by the service.
type Storages struct {
	// TreeStore persists the live tree.
	TreeStore TreeStore

	db *DB
}

// NewStorages opens the backend selected by cfg.Driver.
//
// For "sqlite" and "postgres" it connects, runs pending migrations and wraps
// the connection in a tree repository; "file" opens the JSON document store.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case config.DriverFile:
		fileStore, err := NewFileTreeStorage(cfg.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("file storage error: %w", err)
		}
		return &Storages{TreeStore: fileStore}, nil
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DSN, logger)
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DSN, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.Driver, err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		TreeStore: NewTreeRepository(db, logger),
		db:        db,
	}, nil
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
