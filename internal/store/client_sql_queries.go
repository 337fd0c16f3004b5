// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/planner-sync/models"
)

const (
	settingsTable    = "settings"
	globalSettingsID = "global"

	selectSettings = `
		SELECT
			sync_enabled,
			server_url,
			secret_key,
			auto_sync,
			sync_interval_ms,
			version,
			last_sync,
			synced_revision
		FROM settings
		WHERE id = ?;`

	insertDefaultSettings = `
		INSERT INTO settings (
			id,
			sync_enabled,
			server_url,
			secret_key,
			auto_sync,
			sync_interval_ms,
			version,
			last_sync
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING;`

	selectCollections = `SELECT name, body FROM planner_collections;`

	upsertCollection = `
		INSERT INTO planner_collections (name, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at;`

	deleteCollections = `DELETE FROM planner_collections;`

	bumpRevision = `UPDATE planner_meta SET revision = revision + 1 WHERE id = 1;`

	selectRevision = `SELECT revision FROM planner_meta WHERE id = 1;`
)

// buildUpdateSyncSettingsQuery sets only the provided fields; version and
// last_sync are always written.
func buildUpdateSyncSettingsQuery(update models.SyncConfigUpdate, version int64, lastSync *time.Time, now time.Time) (string, []any, error) {
	builder := sq.Update(settingsTable).
		Set("version", version).
		Set("last_sync", lastSync).
		Set("updated_at", now).
		Where(sq.Eq{"id": globalSettingsID})

	if update.Enabled != nil {
		builder = builder.Set("sync_enabled", *update.Enabled)
	}
	if update.ServerURL != nil {
		builder = builder.Set("server_url", *update.ServerURL)
	}
	if update.SecretKey != nil {
		builder = builder.Set("secret_key", *update.SecretKey)
	}
	if update.AutoSync != nil {
		builder = builder.Set("auto_sync", *update.AutoSync)
	}
	if update.SyncInterval != nil {
		builder = builder.Set("sync_interval_ms", update.SyncInterval.Milliseconds())
	}
	if update.SyncedRevision != nil {
		builder = builder.Set("synced_revision", *update.SyncedRevision)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
