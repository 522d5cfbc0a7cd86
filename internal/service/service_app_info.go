package service

import (
	"context"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/models"
)

type appInfoService struct {
	buildInfo models.BuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports build. A version set in cfg takes precedence
// over the one linked into the binary.
func NewAppInfoService(cfg config.App, build models.BuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version != "" {
		build.Version = cfg.Version
	}
	if build.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		buildInfo: build,
		logger:    logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) models.BuildInfo {
	return s.buildInfo
}
