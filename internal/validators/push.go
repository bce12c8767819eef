package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-live-sync/models"
)

// Field names accepted by [PushValidator].
const (
	FieldDevices      = "devices"
	FieldDeviceToken  = "token"
	FieldTag          = "tag"
	FieldReferenceID  = "reference_id"
	FieldNotification = "notification"
)

type PushValidator struct{}

func NewPushValidator() Validator {
	return &PushValidator{}
}

// Validate checks a [models.PushConfig] or a single [models.Device], as a
// value or a pointer.
func (v *PushValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PushConfig:
		return v.validatePushConfig(ctx, value, fields...)
	case *models.PushConfig:
		return v.validatePushConfig(ctx, *value, fields...)

	case models.Device:
		return v.validateDevice(ctx, value, fields...)
	case *models.Device:
		return v.validateDevice(ctx, *value, fields...)

	case []models.Device:
		return v.validateDevices(ctx, value)

	default:
		return ErrUnsupportedType
	}
}

func (v *PushValidator) validatePushConfig(ctx context.Context, cfg models.PushConfig, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDevices, FieldTag, FieldReferenceID, FieldNotification}
	}

	for _, f := range fields {
		switch f {
		case FieldDevices:
			if err := v.validateDevices(ctx, cfg.Devices); err != nil {
				return err
			}
		case FieldTag:
			if hasSpace(cfg.Tag) {
				return ErrInvalidTag
			}
		case FieldReferenceID:
			if hasSpace(cfg.ReferenceID) {
				return ErrInvalidReferenceID
			}
		case FieldNotification:
			if _, err := json.Marshal(cfg.Notification); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidNotification, err)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// validateDevices rejects blank and repeated tokens.
func (v *PushValidator) validateDevices(ctx context.Context, devices []models.Device) error {
	seen := make(map[string]struct{}, len(devices))
	for i, d := range devices {
		if err := v.validateDevice(ctx, d); err != nil {
			return fmt.Errorf("device %d: %w", i, err)
		}
		if _, ok := seen[d.Token]; ok {
			return fmt.Errorf("device %d: %w", i, ErrDuplicateDevice)
		}
		seen[d.Token] = struct{}{}
	}
	return nil
}

func (v *PushValidator) validateDevice(_ context.Context, d models.Device, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDeviceToken}
	}

	for _, f := range fields {
		switch f {
		case FieldDeviceToken:
			if strings.TrimSpace(d.Token) == "" {
				return ErrEmptyDeviceToken
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
