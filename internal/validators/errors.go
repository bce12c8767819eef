package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyDeviceToken    = errors.New("device token is required")
	ErrDuplicateDevice     = errors.New("device token is listed twice")
	ErrInvalidTag          = errors.New("tag must not contain whitespace")
	ErrInvalidNotification = errors.New("notification must be JSON encodable")
	ErrInvalidReferenceID  = errors.New("reference id must not contain whitespace")
)
