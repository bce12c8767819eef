// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound push transport.
//
// The primary abstraction is [PushAdapter], which decouples the sync service
// from the push provider. The package ships an FCM legacy HTTP implementation
// built on resty and a no-op implementation used when no API key is
// configured.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrUnauthorized]
// for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-live-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/push_adapter_mock.go -package=mock

// PushAdapter hands push messages to the push provider.
type PushAdapter interface {
	// Send delivers msg to every token in msg.RegistrationIDs in a single
	// request. The returned result is the provider's acknowledgement, not a
	// delivery receipt.
	Send(ctx context.Context, msg models.PushMessage) (models.DeliveryResult, error)
}
