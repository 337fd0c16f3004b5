package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/planner-sync/internal/logger"
)

func newTestState(debounce time.Duration) *SyncStateManager {
	s := NewSyncStateManager(debounce, logger.Nop())
	s.SetCredentials(testServerURL, testSecret)
	return s
}

func TestSyncStateManager_IsConfigured(t *testing.T) {
	s := NewSyncStateManager(time.Second, logger.Nop())
	assert.False(t, s.IsConfigured())

	s.SetCredentials(testServerURL, "")
	assert.False(t, s.IsConfigured())

	s.SetCredentials(testServerURL, testSecret)
	assert.True(t, s.IsConfigured())
}

func TestSyncStateManager_SyncGate(t *testing.T) {
	s := newTestState(time.Second)

	assert.True(t, s.TryBeginSync())
	assert.False(t, s.TryBeginSync(), "second sync must not start while one is in flight")

	// no pending changes: the skipped request needs no follow-up
	assert.False(t, s.EndSync())
	assert.True(t, s.TryBeginSync())

	s.MarkLocalChange()
	assert.False(t, s.TryBeginSync())
	assert.True(t, s.EndSync(), "skipped request with pending changes needs one follow-up")

	// the rerun request is consumed
	assert.True(t, s.TryBeginSync())
	assert.False(t, s.EndSync())
}

func TestSyncStateManager_ChangeCounter(t *testing.T) {
	s := newTestState(time.Second)
	assert.False(t, s.HasLocalChanges())

	s.MarkLocalChange()
	seq := s.ChangeSeq()

	// an edit lands while the push is in flight
	s.MarkLocalChange()
	s.MarkPushed(seq)
	assert.True(t, s.HasLocalChanges())

	s.MarkPushed(s.ChangeSeq())
	assert.False(t, s.HasLocalChanges())

	// an older push completing late does not resurrect changes
	s.MarkPushed(seq)
	assert.False(t, s.HasLocalChanges())
}

func TestSyncStateManager_DebounceCoalescesEdits(t *testing.T) {
	s := newTestState(50 * time.Millisecond)
	var fired atomic.Int32

	for range 5 {
		s.ScheduleDebouncedSync(func() { fired.Add(1) })
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, s.HasLocalChanges())
	assert.True(t, s.DebouncePending())

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return fired.Load() > 1 }, 150*time.Millisecond, 10*time.Millisecond)
	assert.False(t, s.DebouncePending())
}

func TestSyncStateManager_DebounceRequiresConfig(t *testing.T) {
	s := NewSyncStateManager(10*time.Millisecond, logger.Nop())
	var fired atomic.Int32

	s.ScheduleDebouncedSync(func() { fired.Add(1) })

	assert.True(t, s.HasLocalChanges(), "the change is recorded even when unconfigured")
	assert.False(t, s.DebouncePending())
	assert.Never(t, func() bool { return fired.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestSyncStateManager_DebounceRechecksConfigOnFire(t *testing.T) {
	s := newTestState(30 * time.Millisecond)
	var fired atomic.Int32

	s.ScheduleDebouncedSync(func() { fired.Add(1) })
	s.SetCredentials("", "")

	assert.Never(t, func() bool { return fired.Load() > 0 }, 100*time.Millisecond, 5*time.Millisecond)
}

func TestSyncStateManager_CancelDebouncedSync(t *testing.T) {
	s := newTestState(20 * time.Millisecond)
	var fired atomic.Int32

	// safe without a pending timer
	s.CancelDebouncedSync()

	s.ScheduleDebouncedSync(func() { fired.Add(1) })
	s.CancelDebouncedSync()

	assert.False(t, s.DebouncePending())
	assert.Never(t, func() bool { return fired.Load() > 0 }, 80*time.Millisecond, 5*time.Millisecond)
	assert.True(t, s.HasLocalChanges())
}

func TestSyncStateManager_AutoSyncDoesNotStack(t *testing.T) {
	s := newTestState(time.Second)
	var ticks atomic.Int32

	interval := 40 * time.Millisecond
	s.StartAutoSync(func() { ticks.Add(1) }, interval)
	s.StartAutoSync(func() { ticks.Add(1) }, interval)
	assert.True(t, s.AutoSyncActive())

	time.Sleep(interval*5 + interval/2)
	s.StopAutoSync()

	// two stacked tickers would fire about ten times
	got := ticks.Load()
	assert.GreaterOrEqual(t, got, int32(3))
	assert.LessOrEqual(t, got, int32(6))
	assert.False(t, s.AutoSyncActive())

	stopped := ticks.Load()
	assert.Never(t, func() bool { return ticks.Load() != stopped }, 3*interval, 10*time.Millisecond)
}

func TestSyncStateManager_StopAutoSyncIsIdempotent(t *testing.T) {
	s := newTestState(time.Second)
	s.StopAutoSync()
	s.StopAutoSync()
	assert.False(t, s.AutoSyncActive())
}

func TestSyncStateManager_Cleanup(t *testing.T) {
	s := newTestState(20 * time.Millisecond)
	var fired atomic.Int32

	s.StartAutoSync(func() { fired.Add(1) }, 20*time.Millisecond)
	s.ScheduleDebouncedSync(func() { fired.Add(1) })
	s.Cleanup()

	status := s.Status()
	assert.False(t, status.AutoSyncActive)
	assert.False(t, s.DebouncePending())
	assert.Never(t, func() bool { return fired.Load() > 0 }, 80*time.Millisecond, 5*time.Millisecond)
}

func TestSyncStateManager_Status(t *testing.T) {
	s := newTestState(time.Second)
	lastSync := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	s.SetVersion(4, &lastSync)

	assert.True(t, s.TryBeginSync())
	status := s.Status()

	assert.True(t, status.Enabled)
	assert.True(t, status.Syncing)
	assert.Equal(t, int64(4), status.Version)
	assert.Equal(t, &lastSync, status.LastSync)
	assert.False(t, status.AutoSyncActive)
}
