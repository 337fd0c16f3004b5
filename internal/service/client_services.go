package service

import (
	"fmt"

	"github.com/MKhiriev/planner-sync/internal/adapter"
	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/internal/validators"
	"github.com/MKhiriev/planner-sync/models"
)

type ClientServices struct {
	ConfigManager SyncConfigManager
	Operations    SyncOperations
	SyncService   ClientSyncService
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientSync, logger *logger.Logger) (*ClientServices, error) {
	snapshotValidator, err := validators.NewSnapshotValidator()
	if err != nil {
		return nil, fmt.Errorf("error creating snapshot validator: %w", err)
	}

	configManager := NewSyncConfigManager(storages.SettingsRepository, cfg.MinSecretKeyLength, logger)
	operations := NewSyncOperations(serverAdapter, storages.SnapshotProvider, snapshotValidator, logger)
	state := NewSyncStateManager(cfg.DebounceDelay, logger)

	defaults := models.SyncConfig{
		Enabled:      false,
		ServerURL:    cfg.DefaultServerURL,
		AutoSync:     true,
		SyncInterval: cfg.SyncInterval,
	}

	return &ClientServices{
		ConfigManager: configManager,
		Operations:    operations,
		SyncService:   NewClientSyncService(configManager, operations, state, defaults, logger),
	}, nil
}
