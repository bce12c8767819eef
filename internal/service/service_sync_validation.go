package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-live-sync/internal/validators"
	"github.com/MKhiriev/go-live-sync/models"
)

// syncValidationService rejects malformed push configs and device lists
// before they are queued. Everything else passes through to inner.
type syncValidationService struct {
	SyncService

	validator validators.Validator
}

func NewSyncValidationService(inner SyncService) SyncService {
	return &syncValidationService{
		SyncService: inner,
		validator:   validators.NewPushValidator(),
	}
}

func (v *syncValidationService) Configure(ctx context.Context, cfg models.PushConfig) *Completion {
	if err := v.validator.Validate(ctx, cfg); err != nil {
		return ResolvedCompletion(Report{}, fmt.Errorf("error during push config validation: %w", err))
	}
	return v.SyncService.Configure(ctx, cfg)
}

func (v *syncValidationService) Notify(ctx context.Context, devices ...models.Device) *Completion {
	if err := v.validator.Validate(ctx, devices); err != nil {
		return ResolvedCompletion(Report{}, fmt.Errorf("error during device list validation: %w", err))
	}
	return v.SyncService.Notify(ctx, devices...)
}

func (v *syncValidationService) CatchUp(ctx context.Context, before models.Tree, device models.Device) *Completion {
	if err := v.validator.Validate(ctx, device); err != nil {
		return ResolvedCompletion(Report{}, fmt.Errorf("error during device validation: %w", err))
	}
	return v.SyncService.CatchUp(ctx, before, device)
}
