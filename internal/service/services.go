package service

import (
	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/internal/tracing"
	"github.com/MKhiriev/planner-sync/models"
)

type Services struct {
	SyncService    SyncService
	HealthService  HealthService
	AppInfoService AppInfoService
}

// NewServices wires the server services. Wrappers are applied inside out:
// tracing sees only requests that passed validation.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, info models.AppBuildInfo, tracer *tracing.Tracer, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(info, logger)
	if err != nil {
		return nil, err
	}

	documents := store.NewTracingDocumentStore(storages.DocumentStore, tracer)

	syncService := NewSyncService(documents, logger)
	syncService = NewSyncTracingService(tracer).Wrap(syncService)
	syncService = NewSyncValidationService(cfg.Auth.MinSecretKeyLength).Wrap(syncService)

	return &Services{
		SyncService:    syncService,
		HealthService:  NewHealthService(storages.DocumentStore, logger),
		AppInfoService: appInfoService,
	}, nil
}
