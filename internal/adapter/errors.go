package adapter

import "errors"

var (
	// ErrTransportUnconfigured is returned by the no-op adapter installed when
	// the push config carries no usable API key.
	ErrTransportUnconfigured = errors.New("push transport is not configured")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("push api key rejected")
	ErrInternalServerError = errors.New("push provider internal error")
	ErrUnavailable         = errors.New("push provider unavailable")
	ErrInvalidPushURL      = errors.New("invalid push url")
)
