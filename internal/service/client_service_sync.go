// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

type clientSyncService struct {
	config     SyncConfigManager
	operations SyncOperations
	state      *SyncStateManager
	defaults   models.SyncConfig
	now        func() time.Time
	logger     *logger.Logger

	mu       sync.Mutex
	autoSync bool
	interval time.Duration
	closed   bool

	// bgCtx bounds syncs started by timers; Close cancels it.
	bgCtx    context.Context
	bgCancel context.CancelFunc
	bg       sync.WaitGroup
}

// NewClientSyncService composes the config manager, the network operations
// and the runtime state. defaults seed a freshly created settings record.
func NewClientSyncService(config SyncConfigManager, operations SyncOperations, state *SyncStateManager, defaults models.SyncConfig, logger *logger.Logger) ClientSyncService {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	return &clientSyncService{
		config:     config,
		operations: operations,
		state:      state,
		defaults:   defaults,
		now:        time.Now,
		logger:     logger,
		bgCtx:      bgCtx,
		bgCancel:   bgCancel,
	}
}

func (s *clientSyncService) Initialize(ctx context.Context) (models.SyncConfig, error) {
	cfg, err := s.config.EnsureSyncConfig(ctx, s.defaults)
	if err != nil {
		return models.SyncConfig{}, err
	}

	s.state.SetVersion(cfg.Version, cfg.LastSync)
	s.apply(cfg)

	revision, err := s.operations.LocalRevision(ctx)
	if err != nil {
		return models.SyncConfig{}, fmt.Errorf("error reading local revision: %w", err)
	}
	if revision > cfg.SyncedRevision {
		s.state.MarkLocalChange()
		s.logger.Info().
			Int64("revision", revision).
			Int64("synced_revision", cfg.SyncedRevision).
			Msg("local edits made since the last push")
	}

	s.logger.Info().
		Bool("enabled", cfg.Enabled).
		Bool("configured", s.state.IsConfigured()).
		Int64("version", cfg.Version).
		Msg("sync service initialized")

	return cfg, nil
}

// apply loads the user-editable part of cfg into the runtime state. A
// disabled config leaves the manager unconfigured.
func (s *clientSyncService) apply(cfg models.SyncConfig) {
	if cfg.Enabled {
		s.state.SetCredentials(cfg.ServerURL, cfg.SecretKey)
	} else {
		s.state.SetCredentials("", "")
	}

	s.mu.Lock()
	s.autoSync = cfg.AutoSync
	s.interval = cfg.SyncInterval
	s.mu.Unlock()
}

func (s *clientSyncService) Sync(ctx context.Context, manual bool) models.SyncResult {
	log := s.logger.With().Bool("manual", manual).Logger()

	if !s.state.TryBeginSync() {
		log.Debug().Msg("sync already in progress, skipping")
		version, _ := s.state.Version()
		return models.SyncResult{Status: models.StatusSkipped, Message: MsgSyncInProgress, Version: version, Timestamp: s.now().UTC()}
	}

	result := s.runSync(ctx)

	if s.state.EndSync() {
		log.Debug().Msg("local changes arrived during sync, running follow-up sync")
		s.goTracked(func(ctx context.Context) { s.Sync(ctx, false) })
	}

	return result
}

// runSync pushes first so that a pull never overwrites edits the server has
// not seen, then pulls and merges newer server data.
func (s *clientSyncService) runSync(ctx context.Context) models.SyncResult {
	serverURL, secretKey := s.state.Credentials()
	if serverURL == "" || secretKey == "" {
		return s.errorResult(MsgSyncNotConfigured)
	}

	pushed := false
	if s.state.HasLocalChanges() {
		seq := s.state.ChangeSeq()
		localVersion, _ := s.state.Version()

		push := s.operations.PushToServer(ctx, serverURL, secretKey, localVersion)
		if !push.Success {
			s.logger.Warn().Str("reason", push.Message).Msg("push failed, local changes kept for retry")
			return s.errorResult("Push failed: " + push.Message)
		}

		s.state.MarkPushed(seq)
		s.state.SetVersion(push.Version, push.LastSync)
		s.persistVersion(ctx, models.SyncConfigUpdate{SyncedRevision: &push.Revision})
		pushed = true

		s.logger.Info().Int64("from", localVersion).Int64("to", push.Version).Msg("push completed")
	}

	localVersion, lastSync := s.state.Version()
	pull := s.operations.PullFromServer(ctx, serverURL, secretKey, localVersion, lastSync)
	if pull.Status == models.StatusError {
		return s.errorResult(pull.Message)
	}

	if pull.HasNewData {
		merge := s.operations.MergeServerData(ctx, pull.Data, pull.Version)
		if !merge.OK() {
			return s.errorResult("Merge failed: " + merge.Message)
		}

		now := s.now().UTC()
		s.state.SetVersion(pull.Version, &now)
		s.persistVersion(ctx, models.SyncConfigUpdate{})

		s.logger.Info().
			Int64("from", localVersion).
			Int64("to", pull.Version).
			Bool("conflict", pull.HasConflict).
			Msg("merge completed")
	} else {
		s.logger.Debug().Int64("version", localVersion).Msg("local data up to date")
	}

	version, _ := s.state.Version()
	return models.SyncResult{
		Status:    models.StatusSuccess,
		Message:   MsgSyncSucceeded,
		Pulled:    pull.HasNewData,
		Pushed:    pushed,
		Version:   version,
		Timestamp: s.now().UTC(),
	}
}

// persistVersion stamps the runtime version into the settings record. A
// failure is logged only: the sync itself succeeded.
func (s *clientSyncService) persistVersion(ctx context.Context, update models.SyncConfigUpdate) {
	version, lastSync := s.state.Version()
	if res := s.config.SaveSyncConfig(ctx, update, version, lastSync); !res.OK() {
		s.logger.Warn().Str("reason", res.Message).Msg("error persisting sync version")
	}
}

func (s *clientSyncService) errorResult(message string) models.SyncResult {
	version, _ := s.state.Version()
	return models.SyncResult{Status: models.StatusError, Message: message, Version: version, Timestamp: s.now().UTC()}
}

func (s *clientSyncService) GetStatus() models.SyncStatus {
	return s.state.Status()
}

func (s *clientSyncService) GetConfig(ctx context.Context) (*models.SyncConfig, error) {
	return s.config.GetSyncConfig(ctx)
}

func (s *clientSyncService) SaveConfig(ctx context.Context, update models.SyncConfigUpdate) models.OperationResult {
	version, lastSync := s.state.Version()

	result := s.config.SaveSyncConfig(ctx, update, version, lastSync)
	if !result.OK() {
		return result
	}

	cfg, err := s.config.GetSyncConfig(ctx)
	if err != nil || cfg == nil {
		return result
	}
	s.apply(*cfg)

	if !s.state.IsConfigured() {
		s.state.CancelDebouncedSync()
	}
	// a running ticker follows the new interval, or stops
	if s.state.AutoSyncActive() {
		s.StartAutoSync()
	}

	return result
}

func (s *clientSyncService) TestConnection(ctx context.Context, serverURL, secretKey string) models.TestConnectionResult {
	return s.operations.TestConnection(ctx, serverURL, secretKey)
}

func (s *clientSyncService) DeleteServerData(ctx context.Context) models.OperationResult {
	serverURL, secretKey := s.state.Credentials()
	if serverURL == "" || secretKey == "" {
		return models.OperationResult{Status: models.StatusError, Message: MsgSyncNotConfigured}
	}

	result := s.operations.DeleteFromServer(ctx, serverURL, secretKey)
	if !result.OK() {
		return result
	}

	// the next push bootstraps version 1 again
	s.state.SetVersion(0, nil)
	s.persistVersion(ctx, models.SyncConfigUpdate{})
	return result
}

func (s *clientSyncService) StartAutoSync() bool {
	s.mu.Lock()
	enabled, interval, closed := s.autoSync, s.interval, s.closed
	s.mu.Unlock()

	if closed || !enabled || interval <= 0 || !s.state.IsConfigured() {
		s.state.StopAutoSync()
		return false
	}

	s.state.StartAutoSync(s.backgroundSync, interval)
	return true
}

func (s *clientSyncService) StopAutoSync() {
	s.state.StopAutoSync()
}

func (s *clientSyncService) TriggerDebouncedSync() {
	s.state.ScheduleDebouncedSync(s.backgroundSync)
}

func (s *clientSyncService) NotifyDataChange() {
	s.TriggerDebouncedSync()
}

func (s *clientSyncService) MarkLocalChanges() {
	s.state.MarkLocalChange()
}

func (s *clientSyncService) CancelDebouncedSync() {
	s.state.CancelDebouncedSync()
}

// backgroundSync is the timer callback. It runs inline so that the auto-sync
// ticker drops ticks while a sync is running.
func (s *clientSyncService) backgroundSync() {
	s.runTracked(func(ctx context.Context) { s.Sync(ctx, false) })
}

func (s *clientSyncService) goTracked(fn func(ctx context.Context)) {
	go s.runTracked(fn)
}

// runTracked runs fn with the background context unless the service is
// closed. Close waits for every such call.
func (s *clientSyncService) runTracked(fn func(ctx context.Context)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.bg.Add(1)
	s.mu.Unlock()

	defer s.bg.Done()
	fn(s.bgCtx)
}

func (s *clientSyncService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.bgCancel()
	s.state.Cleanup()
	s.bg.Wait()

	s.logger.Info().Msg("sync service closed")
}
