// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/store"
)

// ChangeWatcher watches the client SQLite file and notifies the sync service
// when another process (the planner app, or `planner-sync put`) edited the
// local dataset.
//
// File events alone are not enough: a merge from the server writes the same
// file. The watcher compares the snapshot revision, which only local edits
// bump, and notifies on a change.
type ChangeWatcher struct {
	dbPath    string
	snapshots store.SnapshotProvider
	notifier  ChangeNotifier
	logger    *logger.Logger
}

func NewChangeWatcher(dbPath string, snapshots store.SnapshotProvider, notifier ChangeNotifier, logger *logger.Logger) *ChangeWatcher {
	return &ChangeWatcher{
		dbPath:    dbPath,
		snapshots: snapshots,
		notifier:  notifier,
		logger:    logger,
	}
}

func (w *ChangeWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer watcher.Close()

	// the directory is watched since sqlite also writes -wal and -journal files
	// next to the database
	dir := filepath.Dir(w.dbPath)
	if err = watcher.Add(dir); err != nil {
		return fmt.Errorf("error watching %s: %w", dir, err)
	}

	lastRevision, err := w.snapshots.Revision(ctx)
	if err != nil {
		return fmt.Errorf("error reading snapshot revision: %w", err)
	}

	w.logger.Info().Str("path", w.dbPath).Int64("revision", lastRevision).Msg("watching local store for changes")

	base := filepath.Base(w.dbPath)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			revision, err := w.snapshots.Revision(ctx)
			if err != nil {
				w.logger.Warn().Err(err).Str("func", "*ChangeWatcher.Run").Msg("error reading snapshot revision")
				continue
			}
			if revision == lastRevision {
				continue
			}

			w.logger.Debug().Int64("from", lastRevision).Int64("to", revision).Msg("local data changed")
			lastRevision = revision
			w.notifier.NotifyDataChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Str("func", "*ChangeWatcher.Run").Msg("file watcher error")
		}
	}
}
