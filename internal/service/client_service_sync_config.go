package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/internal/validators"
	"github.com/MKhiriev/planner-sync/models"
)

type syncConfigManager struct {
	settings  store.SettingsRepository
	validator validators.Validator
	logger    *logger.Logger
}

func NewSyncConfigManager(settings store.SettingsRepository, minSecretKeyLength int, logger *logger.Logger) SyncConfigManager {
	return &syncConfigManager{
		settings:  settings,
		validator: validators.NewSyncValidator(minSecretKeyLength),
		logger:    logger,
	}
}

func (m *syncConfigManager) EnsureSyncConfig(ctx context.Context, defaults models.SyncConfig) (models.SyncConfig, error) {
	cfg, err := m.settings.EnsureSettings(ctx, defaults)
	if err != nil {
		return models.SyncConfig{}, fmt.Errorf("error ensuring settings record: %w", err)
	}
	return cfg, nil
}

func (m *syncConfigManager) GetSyncConfig(ctx context.Context) (*models.SyncConfig, error) {
	cfg, err := m.settings.GetSettings(ctx)
	if errors.Is(err, store.ErrSettingsNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading settings record: %w", err)
	}
	return &cfg, nil
}

func (m *syncConfigManager) SaveSyncConfig(ctx context.Context, update models.SyncConfigUpdate, version int64, lastSync *time.Time) models.OperationResult {
	if err := m.validator.Validate(ctx, update); err != nil {
		return models.OperationResult{Status: models.StatusError, Message: err.Error()}
	}

	_, err := m.settings.UpdateSyncSettings(ctx, update, version, lastSync)
	if errors.Is(err, store.ErrSettingsNotFound) {
		return models.OperationResult{Status: models.StatusError, Message: MsgSettingsNotFound}
	}
	if err != nil {
		m.logger.Err(err).Str("func", "*syncConfigManager.SaveSyncConfig").Msg("error saving sync config")
		return models.OperationResult{Status: models.StatusError, Message: err.Error()}
	}

	return models.OperationResult{Status: models.StatusSuccess, Message: MsgConfigSaved}
}
