// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-live-sync service. It aggregates all sub-configurations and is
// populated by merging defaults, environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the log level and version.
	App App `envPrefix:"APP_"`

	// Storage selects the tree store backend and the path of the live tree.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the outbound push transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds settings of the synchronization queue.
	Workers Workers `envPrefix:"WORKERS_"`

	// Push optionally configures notifications at boot. When APIKey is empty
	// the service starts unconfigured and waits for PUT /api/sync/config.
	Push Push `envPrefix:"PUSH_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level settings.
type App struct {
	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running service.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage driver names accepted by [Storage.Driver].
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Storage selects the backend holding the persisted tree.
type Storage struct {
	// Driver is one of "file", "sqlite" or "postgres".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the JSON file path for the file driver (":memory:" keeps the
	// tree in memory), the SQLite database file, or the PostgreSQL
	// connection string.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`

	// TreePath is the slash separated key path of the live tree inside the
	// store (e.g. "databases/chat").
	// Env: STORAGE_TREE_PATH
	TreePath string `env:"TREE_PATH"`
}

// Server holds network and timeout settings for the inbound HTTP API.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on, in
	// "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds how long a request waits for its queued
	// operation to complete.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings of the push transport client.
type Adapter struct {
	// PushURL is the push service send endpoint.
	// Env: ADAPTER_PUSH_URL
	PushURL string `env:"PUSH_URL"`

	// RequestTimeout is the timeout of a single send request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds settings of the synchronization queue.
type Workers struct {
	// JobTimeout bounds every queued job. Zero disables the bound.
	// Env: WORKERS_JOB_TIMEOUT
	JobTimeout time.Duration `env:"JOB_TIMEOUT"`
}

// Push is the boot-time push configuration.
type Push struct {
	// Env: PUSH_API_KEY
	APIKey string `env:"API_KEY"`
	// Env: PUSH_REFERENCE_ID
	ReferenceID string `env:"REFERENCE_ID"`
	// Env: PUSH_TAG
	Tag string `env:"TAG"`
}

// Defaults returns the values used for settings no source provides.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: "debug", Version: "dev"},
		Storage: Storage{
			Driver:   DriverFile,
			DSN:      "live-db.json",
			TreePath: "root",
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			PushURL:        "https://fcm.googleapis.com/fcm/send",
			RequestTimeout: 15 * time.Second,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
