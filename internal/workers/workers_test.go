// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/planner-sync/internal/limiter"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/mock"
)

// stubWorker blocks until ctx is done and returns err.
type stubWorker struct {
	started atomic.Bool
	err     error
}

func (s *stubWorker) Run(ctx context.Context) error {
	s.started.Store(true)
	<-ctx.Done()
	return s.err
}

type countingNotifier struct {
	calls atomic.Int32
}

func (c *countingNotifier) NotifyDataChange() {
	c.calls.Add(1)
}

func TestWorkers_Run_AllWorkersAreStarted(t *testing.T) {
	w1, w2 := &stubWorker{}, &stubWorker{}
	ws := NewWorkers(w1, w2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return w1.started.Load() && w2.started.Load()
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
}

func TestWorkers_Run_JoinsErrors(t *testing.T) {
	errBoom := errors.New("boom")
	ws := NewWorkers(&stubWorker{err: errBoom}, &stubWorker{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, ws.Run(ctx), errBoom)
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers().Run(context.Background()))
}

func TestRateLimitJanitor_EvictsExpiredWindows(t *testing.T) {
	rateLimiter := limiter.NewFixedWindow(10*time.Millisecond, 1)
	rateLimiter.Allow("ip:192.0.2.1")
	rateLimiter.Allow("ABCDEFGH")
	require.Equal(t, 2, rateLimiter.Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = NewRateLimitJanitor(rateLimiter, 5*time.Millisecond, logger.Nop()).Run(ctx) }()

	assert.Eventually(t, func() bool { return rateLimiter.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRateLimitJanitor_DisabledWaitsForCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewRateLimitJanitor(limiter.NewFixedWindow(time.Minute, 1), 0, logger.Nop()).Run(ctx)
	assert.NoError(t, err)
}

func TestChangeWatcher_NotifiesOnRevisionChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshots := mock.NewMockSnapshotProvider(ctrl)

	dbPath := filepath.Join(t.TempDir(), "planner.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("v0"), 0o600))

	var revision atomic.Int64
	snapshots.EXPECT().Revision(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		return revision.Load(), nil
	}).AnyTimes()

	notifier := &countingNotifier{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewChangeWatcher(dbPath, snapshots, notifier, logger.Nop()).Run(ctx) }()

	// let the watcher register before touching the file
	time.Sleep(50 * time.Millisecond)

	// a write that does not bump the revision (a merge) is ignored
	require.NoError(t, os.WriteFile(dbPath, []byte("merged"), 0o600))
	assert.Never(t, func() bool { return notifier.calls.Load() > 0 }, 100*time.Millisecond, 10*time.Millisecond)

	revision.Store(1)
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("edit"), 0o600))
	assert.Eventually(t, func() bool { return notifier.calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	// unrelated files in the same directory are ignored
	revision.Store(2)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(dbPath), "other.txt"), []byte("x"), 0o600))
	assert.Never(t, func() bool { return notifier.calls.Load() > 1 }, 100*time.Millisecond, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestChangeWatcher_MissingDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshots := mock.NewMockSnapshotProvider(ctrl)

	dbPath := filepath.Join(t.TempDir(), "missing", "planner.db")
	err := NewChangeWatcher(dbPath, snapshots, &countingNotifier{}, logger.Nop()).Run(context.Background())
	assert.Error(t, err)
}
