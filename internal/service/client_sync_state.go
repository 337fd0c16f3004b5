package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

// SyncStateManager owns the runtime sync state of the client and its two
// timers: the recurring auto-sync ticker and the one-shot debounce timer.
// All methods are safe for concurrent use.
//
// Local edits are counted rather than flagged. A push records the counter
// value its snapshot was taken at, so an edit that arrives while the push is
// in flight keeps hasLocalChanges set.
type SyncStateManager struct {
	mu sync.Mutex

	serverURL string
	secretKey string

	syncInProgress bool
	rerun          bool

	localVersion int64
	lastSync     *time.Time

	changeSeq uint64
	pushedSeq uint64

	debounceDelay time.Duration
	debounceTimer *time.Timer
	debounceGen   uint64

	// autoMu serializes starting and stopping the ticker.
	autoMu     sync.Mutex
	autoCancel context.CancelFunc
	autoWG     sync.WaitGroup

	logger *logger.Logger
}

func NewSyncStateManager(debounceDelay time.Duration, logger *logger.Logger) *SyncStateManager {
	return &SyncStateManager{
		debounceDelay: debounceDelay,
		logger:        logger,
	}
}

// SetCredentials sets the server URL and secret key used by syncs. Empty
// values make the manager unconfigured.
func (s *SyncStateManager) SetCredentials(serverURL, secretKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverURL = serverURL
	s.secretKey = secretKey
}

// Credentials returns the current server URL and secret key.
func (s *SyncStateManager) Credentials() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverURL, s.secretKey
}

// IsConfigured reports whether both the server URL and the secret key are
// set.
func (s *SyncStateManager) IsConfigured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isConfigured()
}

func (s *SyncStateManager) isConfigured() bool {
	return s.serverURL != "" && s.secretKey != ""
}

func (s *SyncStateManager) SetVersion(version int64, lastSync *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localVersion = version
	s.lastSync = lastSync
}

func (s *SyncStateManager) Version() (int64, *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localVersion, s.lastSync
}

// MarkLocalChange records one local edit.
func (s *SyncStateManager) MarkLocalChange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changeSeq++
}

// ChangeSeq returns the edit counter. Read it before exporting a snapshot
// and hand it to MarkPushed once the push succeeded.
func (s *SyncStateManager) ChangeSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changeSeq
}

// MarkPushed records that every edit up to seq reached the server.
func (s *SyncStateManager) MarkPushed(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.pushedSeq {
		s.pushedSeq = seq
	}
}

func (s *SyncStateManager) HasLocalChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasLocalChanges()
}

func (s *SyncStateManager) hasLocalChanges() bool {
	return s.changeSeq > s.pushedSeq
}

// TryBeginSync moves the manager to Syncing. It returns false when a sync is
// already running; the request is then remembered for EndSync.
func (s *SyncStateManager) TryBeginSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncInProgress {
		s.rerun = true
		return false
	}
	s.syncInProgress = true
	return true
}

// EndSync moves the manager back to Idle. It returns true when a sync was
// requested meanwhile and local changes are still pending, in which case the
// caller runs exactly one follow-up sync.
func (s *SyncStateManager) EndSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncInProgress = false
	rerun := s.rerun && s.hasLocalChanges()
	s.rerun = false
	return rerun
}

// StartAutoSync calls callback every interval until StopAutoSync. A running
// ticker is stopped first, so tickers never stack. A tick that fires while
// callback is still running is dropped.
func (s *SyncStateManager) StartAutoSync(callback func(), interval time.Duration) {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()

	s.stopAutoSync()

	s.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	s.autoCancel = cancel
	s.autoWG.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.autoWG.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.logger.Debug().Msg("auto-sync triggered")
				callback()
			}
		}
	}()

	s.logger.Info().Dur("interval", interval).Msg("auto-sync started")
}

// StopAutoSync stops the auto-sync ticker and waits for a running callback
// to return. It is a no-op when auto-sync is not running.
func (s *SyncStateManager) StopAutoSync() {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()

	s.stopAutoSync()
}

func (s *SyncStateManager) stopAutoSync() {
	s.mu.Lock()
	cancel := s.autoCancel
	s.autoCancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.autoWG.Wait()
	s.logger.Info().Msg("auto-sync stopped")
}

func (s *SyncStateManager) AutoSyncActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoCancel != nil
}

// ScheduleDebouncedSync records a local change and restarts the debounce
// timer. The timer is armed only while the manager is configured, and the
// configuration is checked again when it fires.
func (s *SyncStateManager) ScheduleDebouncedSync(callback func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.changeSeq++
	s.stopDebounceLocked()

	if !s.isConfigured() {
		return
	}

	gen := s.debounceGen
	s.debounceTimer = time.AfterFunc(s.debounceDelay, func() {
		s.mu.Lock()
		if gen != s.debounceGen {
			s.mu.Unlock()
			return
		}
		s.debounceTimer = nil
		configured := s.isConfigured()
		s.mu.Unlock()

		if !configured {
			return
		}
		s.logger.Debug().Msg("debounced sync triggered")
		callback()
	})
}

// CancelDebouncedSync drops a pending debounced sync without firing it.
func (s *SyncStateManager) CancelDebouncedSync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopDebounceLocked()
}

// stopDebounceLocked stops the timer and invalidates a callback that already
// fired but has not taken the lock yet.
func (s *SyncStateManager) stopDebounceLocked() {
	s.debounceGen++
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
}

func (s *SyncStateManager) DebouncePending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debounceTimer != nil
}

// Status composes the read-only sync status.
func (s *SyncStateManager) Status() models.SyncStatus {
	autoSyncActive := s.AutoSyncActive()

	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SyncStatus{
		Enabled:        s.isConfigured(),
		Syncing:        s.syncInProgress,
		Version:        s.localVersion,
		LastSync:       s.lastSync,
		AutoSyncActive: autoSyncActive,
		HasLocalChange: s.hasLocalChanges(),
	}
}

// Cleanup stops both timers. It must be called on teardown.
func (s *SyncStateManager) Cleanup() {
	s.StopAutoSync()
	s.CancelDebouncedSync()
}
