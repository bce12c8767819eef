// Package server runs the HTTP API of the sync service.
//
// It owns the listener lifecycle: startup, cancellation through the
// supplied context and graceful shutdown bounded by a drain timeout.
package server
