package client

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	return newTestAppAt(t, filepath.Join(t.TempDir(), "planner.db"))
}

func newTestAppAt(t *testing.T, dbPath string) *App {
	t.Helper()

	cfg, err := config.GetClientConfig(&config.StructuredConfig{
		Client: config.Client{
			DBPath:        dbPath,
			DebounceDelay: 50 * time.Millisecond,
		},
	})
	require.NoError(t, err)

	app, err := NewApp(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	return app
}

func TestApp_RunSyncsLocalEdits(t *testing.T) {
	ctx := context.Background()
	srv := newFakeSyncServer(t)
	app := newTestApp(t)

	syncService := app.SyncService()
	_, err := syncService.Initialize(ctx)
	require.NoError(t, err)

	enabled, serverURL, secretKey := true, srv.URL, testSecretKey
	res := syncService.SaveConfig(ctx, models.SyncConfigUpdate{Enabled: &enabled, ServerURL: &serverURL, SecretKey: &secretKey})
	require.True(t, res.OK(), res.Message)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(runCtx) }()

	// edits made while the watcher starts up are retried until one is pushed
	assert.Eventually(t, func() bool {
		_ = app.Snapshots().Put(ctx, "columns", json.RawMessage(`[{"id":"col-1"}]`))
		return srv.pushCount() > 0
	}, 5*time.Second, 200*time.Millisecond)

	doc, ok := srv.document(testSecretKey)
	require.True(t, ok)
	assert.Contains(t, string(doc.data), "col-1")

	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, syncService.GetStatus().AutoSyncActive)
}

func TestApp_RunPushesEditsMadeWhileStopped(t *testing.T) {
	ctx := context.Background()
	srv := newFakeSyncServer(t)

	writeColumns := func(body string) string {
		file := filepath.Join(t.TempDir(), "columns.json")
		require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
		return file
	}

	deviceA := newDBPath(t)
	configure(t, deviceA, srv.URL)
	_, err := runCLI(t, deviceA, "put", "columns", writeColumns(`[{"id":"from-A"}]`))
	require.NoError(t, err)
	_, err = runCLI(t, deviceA, "sync")
	require.NoError(t, err)
	require.Equal(t, 1, srv.pushCount())

	// device B edits without a running client, then starts one
	deviceB := newDBPath(t)
	configure(t, deviceB, srv.URL)
	_, err = runCLI(t, deviceB, "put", "columns", writeColumns(`[{"id":"edit-on-B"}]`))
	require.NoError(t, err)

	app := newTestAppAt(t, deviceB)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(runCtx) }()

	assert.Eventually(t, func() bool { return srv.pushCount() == 2 }, 5*time.Second, 20*time.Millisecond)
	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	doc, ok := srv.document(testSecretKey)
	require.True(t, ok)
	assert.Contains(t, string(doc.data), "edit-on-B")
	assert.Equal(t, int64(2), doc.version)

	snapshot, err := app.Snapshots().Export(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(snapshot), "edit-on-B")
	assert.NotContains(t, string(snapshot), "from-A")

	// once pushed, a restart has nothing pending
	cfg, err := app.SyncService().GetConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, int64(1), cfg.SyncedRevision)
}
