package client

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/service"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/models"
)

func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	info := models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123")
	err := Execute(context.Background(), info, append([]string{"--db", dbPath}, args...), &out)
	return out.String(), err
}

func newDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "planner.db")
}

func configure(t *testing.T, dbPath, serverURL string) {
	t.Helper()
	_, err := runCLI(t, dbPath, "config", "set", "--enabled", "--server-url", serverURL, "--secret-key", testSecretKey)
	require.NoError(t, err)
}

func decodeOutput[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestVersion_DoesNotOpenStore(t *testing.T) {
	dbPath := newDBPath(t)

	out, err := runCLI(t, dbPath, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "Build version: 1.2.3")
	assert.Contains(t, out, "Build commit: abc123")
	assert.NoFileExists(t, dbPath)
}

func TestConfigShow_BeforeInit(t *testing.T) {
	_, err := runCLI(t, newDBPath(t), "config", "show")
	assert.ErrorIs(t, err, errNotInitialized)
}

func TestInit_CreatesDefaults(t *testing.T) {
	dbPath := newDBPath(t)

	out, err := runCLI(t, dbPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings initialized")

	out, err = runCLI(t, dbPath, "--json", "config", "show")
	require.NoError(t, err)

	view := decodeOutput[configView](t, out)
	assert.False(t, view.Enabled)
	assert.True(t, view.AutoSync)
	assert.Equal(t, config.DefaultClientServerURL, view.ServerURL)
	assert.Equal(t, config.DefaultClientSyncInterval.String(), view.SyncInterval)
	assert.Empty(t, view.SecretKey)
}

func TestConfigSet(t *testing.T) {
	t.Run("applies changed flags and masks the key", func(t *testing.T) {
		dbPath := newDBPath(t)

		out, err := runCLI(t, dbPath, "config", "set", "--enabled", "--server-url", "https://sync.example.com", "--secret-key", testSecretKey, "--interval", "10m")
		require.NoError(t, err)
		assert.Contains(t, out, service.MsgConfigSaved)

		out, err = runCLI(t, dbPath, "--json", "config", "show")
		require.NoError(t, err)
		view := decodeOutput[configView](t, out)
		assert.True(t, view.Enabled)
		assert.Equal(t, "https://sync.example.com", view.ServerURL)
		assert.Equal(t, "****EFGH", view.SecretKey)
		assert.Equal(t, "10m0s", view.SyncInterval)
		// untouched
		assert.True(t, view.AutoSync)
	})

	t.Run("no flags", func(t *testing.T) {
		_, err := runCLI(t, newDBPath(t), "config", "set")
		assert.ErrorIs(t, err, errNothingToUpdate)
	})

	t.Run("short secret key", func(t *testing.T) {
		_, err := runCLI(t, newDBPath(t), "config", "set", "--secret-key", "short")
		assert.ErrorIs(t, err, errOperationFailed)
		assert.ErrorContains(t, err, "secret key is too short")
	})
}

func TestTestCommand(t *testing.T) {
	srv := newFakeSyncServer(t)
	dbPath := newDBPath(t)
	configure(t, dbPath, srv.URL)

	out, err := runCLI(t, dbPath, "test")
	require.NoError(t, err)
	assert.Contains(t, out, service.MsgConnectionSuccessful+" (server status: ok)")

	_, err = runCLI(t, dbPath, "test", "--secret-key", "short")
	assert.ErrorIs(t, err, errOperationFailed)
	assert.ErrorContains(t, err, service.MsgInvalidSecretKey)
}

func TestSync_NotConfigured(t *testing.T) {
	_, err := runCLI(t, newDBPath(t), "sync")

	assert.ErrorIs(t, err, errOperationFailed)
	assert.ErrorContains(t, err, service.MsgSyncNotConfigured)
}

func TestSync_BetweenTwoDevices(t *testing.T) {
	srv := newFakeSyncServer(t)

	deviceA := newDBPath(t)
	configure(t, deviceA, srv.URL)

	columns := filepath.Join(t.TempDir(), "columns.json")
	require.NoError(t, os.WriteFile(columns, []byte(`[{"id":"col-1","title":"Today"}]`), 0o600))

	out, err := runCLI(t, deviceA, "put", "columns", columns)
	require.NoError(t, err)
	assert.Contains(t, out, "Collection columns updated")

	out, err = runCLI(t, deviceA, "--json", "sync", "--push")
	require.NoError(t, err)
	pushed := decodeOutput[models.SyncResult](t, out)
	assert.True(t, pushed.Pushed)
	assert.False(t, pushed.Pulled)
	assert.Equal(t, int64(1), pushed.Version)

	doc, ok := srv.document(testSecretKey)
	require.True(t, ok)
	assert.Contains(t, string(doc.data), "col-1")

	deviceB := newDBPath(t)
	configure(t, deviceB, srv.URL)

	out, err = runCLI(t, deviceB, "--json", "sync")
	require.NoError(t, err)
	pulled := decodeOutput[models.SyncResult](t, out)
	assert.False(t, pulled.Pushed)
	assert.True(t, pulled.Pulled)
	assert.Equal(t, int64(1), pulled.Version)

	// the pulled snapshot is now device B's local data
	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{DB: config.ClientDB{DSN: deviceB}}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	snapshot, err := storages.SnapshotProvider.Export(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(snapshot), "col-1")

	out, err = runCLI(t, deviceB, "--json", "status")
	require.NoError(t, err)
	status := decodeOutput[models.SyncStatus](t, out)
	assert.Equal(t, int64(1), status.Version)
	assert.NotNil(t, status.LastSync)
}

func TestPut_UnknownCollection(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(file, []byte(`[]`), 0o600))

	_, err := runCLI(t, newDBPath(t), "put", "notes", file)
	assert.ErrorIs(t, err, store.ErrUnknownCollection)
}

func TestDeleteRemote(t *testing.T) {
	srv := newFakeSyncServer(t)
	dbPath := newDBPath(t)
	configure(t, dbPath, srv.URL)

	_, err := runCLI(t, dbPath, "sync", "--push")
	require.NoError(t, err)
	_, ok := srv.document(testSecretKey)
	require.True(t, ok)

	_, err = runCLI(t, dbPath, "delete-remote")
	assert.ErrorIs(t, err, errDeleteNotConfirmed)

	out, err := runCLI(t, dbPath, "delete-remote", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Data deleted")

	_, ok = srv.document(testSecretKey)
	assert.False(t, ok)

	out, err = runCLI(t, dbPath, "--json", "status")
	require.NoError(t, err)
	assert.Zero(t, decodeOutput[models.SyncStatus](t, out).Version)
}
