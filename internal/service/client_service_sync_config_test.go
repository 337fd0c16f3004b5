package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/mock"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/models"
)

func newTestConfigManager(t *testing.T) (SyncConfigManager, *mock.MockSettingsRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	settings := mock.NewMockSettingsRepository(ctrl)
	return NewSyncConfigManager(settings, 8, logger.Nop()), settings
}

func TestSyncConfigManager_GetSyncConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("no settings record", func(t *testing.T) {
		m, settings := newTestConfigManager(t)
		settings.EXPECT().GetSettings(ctx).Return(models.SyncConfig{}, store.ErrSettingsNotFound)

		cfg, err := m.GetSyncConfig(ctx)
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("disabled record is still returned", func(t *testing.T) {
		m, settings := newTestConfigManager(t)
		settings.EXPECT().GetSettings(ctx).Return(models.SyncConfig{Enabled: false, ServerURL: "https://sync.example.com"}, nil)

		cfg, err := m.GetSyncConfig(ctx)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, "https://sync.example.com", cfg.ServerURL)
	})

	t.Run("storage failure", func(t *testing.T) {
		m, settings := newTestConfigManager(t)
		settings.EXPECT().GetSettings(ctx).Return(models.SyncConfig{}, errors.New("disk I/O error"))

		cfg, err := m.GetSyncConfig(ctx)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestSyncConfigManager_SaveSyncConfig(t *testing.T) {
	ctx := context.Background()
	lastSync := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	url := "https://sync.example.com"

	t.Run("stamps version and last sync", func(t *testing.T) {
		m, settings := newTestConfigManager(t)
		update := models.SyncConfigUpdate{ServerURL: &url}
		settings.EXPECT().UpdateSyncSettings(ctx, update, int64(7), &lastSync).Return(models.SyncConfig{}, nil)

		res := m.SaveSyncConfig(ctx, update, 7, &lastSync)
		assert.True(t, res.OK())
		assert.Equal(t, MsgConfigSaved, res.Message)
	})

	t.Run("missing record is an error result", func(t *testing.T) {
		m, settings := newTestConfigManager(t)
		settings.EXPECT().UpdateSyncSettings(ctx, gomock.Any(), int64(0), gomock.Nil()).Return(models.SyncConfig{}, store.ErrSettingsNotFound)

		res := m.SaveSyncConfig(ctx, models.SyncConfigUpdate{}, 0, nil)
		assert.Equal(t, models.StatusError, res.Status)
		assert.Equal(t, MsgSettingsNotFound, res.Message)
	})

	t.Run("short secret key is rejected before storage", func(t *testing.T) {
		m, _ := newTestConfigManager(t)
		short := "abc"

		res := m.SaveSyncConfig(ctx, models.SyncConfigUpdate{SecretKey: &short}, 0, nil)
		assert.Equal(t, models.StatusError, res.Status)
	})

	t.Run("invalid url is rejected before storage", func(t *testing.T) {
		m, _ := newTestConfigManager(t)
		bad := "ftp://sync.example.com"

		res := m.SaveSyncConfig(ctx, models.SyncConfigUpdate{ServerURL: &bad}, 0, nil)
		assert.Equal(t, models.StatusError, res.Status)
	})
}

func TestSyncConfigManager_EnsureSyncConfig(t *testing.T) {
	ctx := context.Background()
	m, settings := newTestConfigManager(t)
	defaults := models.SyncConfig{ServerURL: "https://sync.example.com", AutoSync: true, SyncInterval: 5 * time.Minute}

	settings.EXPECT().EnsureSettings(ctx, defaults).Return(defaults, nil)

	cfg, err := m.EnsureSyncConfig(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}
