package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

type settingsRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	return &settingsRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (s *settingsRepository) EnsureSettings(ctx context.Context, defaults models.SyncConfig) (models.SyncConfig, error) {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, insertDefaultSettings,
		globalSettingsID,
		defaults.Enabled,
		defaults.ServerURL,
		defaults.SecretKey,
		defaults.AutoSync,
		defaults.SyncInterval.Milliseconds(),
		defaults.Version,
		defaults.LastSync,
	)
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.EnsureSettings").
			Msg("failed to insert default settings")
		return models.SyncConfig{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return s.GetSettings(ctx)
}

func (s *settingsRepository) GetSettings(ctx context.Context) (models.SyncConfig, error) {
	log := logger.FromContext(ctx)

	var (
		cfg        models.SyncConfig
		intervalMs int64
		lastSync   sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx, selectSettings, globalSettingsID).Scan(
		&cfg.Enabled,
		&cfg.ServerURL,
		&cfg.SecretKey,
		&cfg.AutoSync,
		&intervalMs,
		&cfg.Version,
		&lastSync,
		&cfg.SyncedRevision,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncConfig{}, ErrSettingsNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.GetSettings").
			Msg("failed to scan settings row")
		return models.SyncConfig{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	cfg.SyncInterval = time.Duration(intervalMs) * time.Millisecond
	if lastSync.Valid {
		t := lastSync.Time
		cfg.LastSync = &t
	}

	return cfg, nil
}

func (s *settingsRepository) UpdateSyncSettings(ctx context.Context, update models.SyncConfigUpdate, version int64, lastSync *time.Time) (models.SyncConfig, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateSyncSettingsQuery(update, version, lastSync, s.now().UTC())
	if err != nil {
		return models.SyncConfig{}, err
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "settingsRepository.UpdateSyncSettings").
			Msg("failed to update settings")
		return models.SyncConfig{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.SyncConfig{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.SyncConfig{}, ErrSettingsNotFound
	}

	return s.GetSettings(ctx)
}
