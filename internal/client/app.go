package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/planner-sync/internal/adapter"
	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/service"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/internal/workers"
	"github.com/MKhiriev/planner-sync/models"
)

var _ Client = (*App)(nil)

type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	services *service.ClientServices
	logger   *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	serverAdapter := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, logger)

	services, err := service.NewClientServices(storages, serverAdapter, cfg.Sync, logger)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create client services: %w", err)
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		services: services,
		logger:   logger,
	}, nil
}

// SyncService returns the client sync facade.
func (a *App) SyncService() service.ClientSyncService {
	return a.services.SyncService
}

// Snapshots returns the local planner dataset.
func (a *App) Snapshots() store.SnapshotProvider {
	return a.storages.SnapshotProvider
}

// Run loads the settings, syncs once and then keeps syncing until ctx is
// done: local edits trigger a debounced sync and auto-sync runs on its
// interval.
func (a *App) Run(ctx context.Context) error {
	syncService := a.services.SyncService

	if _, err := syncService.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize sync service: %w", err)
	}
	defer syncService.Close()

	res := syncService.Sync(ctx, false)
	if res.Status == models.StatusError {
		a.logger.Warn().Str("reason", res.Message).Msg("startup sync failed")
	}

	if syncService.StartAutoSync() {
		a.logger.Info().Msg("auto-sync started")
	}

	watcher := workers.NewChangeWatcher(a.storages.Path(), a.storages.SnapshotProvider, syncService, a.logger)
	if err := workers.NewWorkers(watcher).Run(ctx); err != nil {
		return fmt.Errorf("watch local store: %w", err)
	}

	a.logger.Info().Msg("client stopped")
	return nil
}

// Close stops background syncs and closes the local store.
func (a *App) Close() error {
	a.services.SyncService.Close()
	return a.storages.Close()
}
