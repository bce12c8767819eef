package service

import (
	"context"

	"github.com/MKhiriev/go-live-sync/internal/config"
	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/models"
)

const notAvailable = "N/A"

type appInfoService struct {
	info models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService serves info, taking the version from cfg when the binary
// was built without one. It fails when neither carries a version.
func NewAppInfoService(info models.AppBuildInfo, cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if info.BuildVersion() == notAvailable {
		if cfg.Version == "" {
			return nil, ErrVersionIsNotSpecified
		}
		info = models.NewAppBuildInfo(cfg.Version, info.BuildDate(), info.BuildCommit())
	}

	return &appInfoService{
		info:   info,
		logger: logger,
	}, nil
}

func (s *appInfoService) BuildInfo(_ context.Context) models.AppBuildInfo {
	return s.info
}
