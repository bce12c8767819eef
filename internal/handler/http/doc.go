// Package http implements the REST surface of the live tree service.
//
// Routes read and mutate the live tree and drive the sync service. Every
// mutating request waits for the notification cycle it triggered, bounded by
// the configured request timeout, and answers with the cycle report. Request
// tracing, access logging and panic recovery are handled by middleware
// before requests reach the handlers.
package http
