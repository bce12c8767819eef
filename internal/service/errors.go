package service

import "errors"

var (
	// ErrStoreReadFailure wraps store errors other than not found met while
	// loading the live tree. Load recovers from it by starting empty.
	ErrStoreReadFailure = errors.New("store read failure")
	// ErrStoreWriteFailure aborts a notification cycle; the baseline is left
	// where it was so the next cycle announces the same change.
	ErrStoreWriteFailure = errors.New("store write failure")
	// ErrDeliveryFailure is reported per envelope the transport refused.
	ErrDeliveryFailure = errors.New("push delivery failure")
	// ErrConfigurationInvalid is returned when a push config leaves no room
	// for payload on some platform.
	ErrConfigurationInvalid = errors.New("invalid push configuration")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrNilMutation           = errors.New("mutation func is nil")
)
