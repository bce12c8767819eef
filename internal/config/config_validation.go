// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Driver {
	case DriverFile, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	if cfg.Storage.DSN == "" {
		return fmt.Errorf("%w: empty dsn", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.TreePath == "" {
		return fmt.Errorf("%w: empty tree path", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}

	if cfg.Adapter.PushURL == "" {
		return fmt.Errorf("%w: empty push url", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.JobTimeout < 0 {
		return fmt.Errorf("%w: negative job timeout", ErrInvalidWorkerConfigs)
	}

	return nil
}
