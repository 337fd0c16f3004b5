package service

import (
	"context"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

type appInfoService struct {
	info models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService serves the build metadata linked into the server binary.
func NewAppInfoService(info models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if info.BuildVersion() == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		info:   info,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.VersionResponse {
	return models.VersionResponse{
		Version: s.info.BuildVersion(),
		Date:    s.info.BuildDate(),
		Commit:  s.info.BuildCommit(),
	}
}
