// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound sync requests before they reach the
// queue.
//
// A Validator accepts an optional list of field names restricting the check
// to a subset of rules; without fields every rule of the type runs.
package validators

import "context"

// Validator validates arbitrary request values.
type Validator interface {
	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
