package service

import (
	"github.com/MKhiriev/go-live-sync/internal/adapter"
	"github.com/MKhiriev/go-live-sync/internal/config"
	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/internal/store"
	"github.com/MKhiriev/go-live-sync/models"
)

type Services struct {
	SyncService    SyncService
	AppInfoService AppInfoService
}

func NewServices(queue JobSubmitter, storages *store.Storages, info models.AppBuildInfo, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(info, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	newAdapter := func(apiKey string) (adapter.PushAdapter, error) {
		return adapter.NewPushAdapter(apiKey, cfg.Adapter, logger)
	}

	return &Services{
		SyncService:    NewSyncValidationService(NewSyncService(queue, storages.TreeStore, cfg.Storage.TreePath, newAdapter, logger)),
		AppInfoService: appInfo,
	}, nil
}
