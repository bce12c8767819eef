package utils

import "github.com/google/uuid"

// NewID returns a time ordered UUIDv7, falling back to a random UUIDv4.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
