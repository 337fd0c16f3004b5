package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

// SnapshotFormatVersion is the layout version written into every export.
const SnapshotFormatVersion = 2

// Planner collections carried by a snapshot, with the value exported when a
// collection has never been written.
var plannerCollections = map[string]json.RawMessage{
	"columns":  json.RawMessage(`[]`),
	"calendar": json.RawMessage(`{}`),
	"settings": json.RawMessage(`{}`),
	"weeks":    json.RawMessage(`[]`),
}

// plannerSnapshot is the exported dataset layout.
type plannerSnapshot struct {
	Columns    json.RawMessage `json:"columns"`
	Calendar   json.RawMessage `json:"calendar"`
	Settings   json.RawMessage `json:"settings"`
	Weeks      json.RawMessage `json:"weeks"`
	ExportDate time.Time       `json:"exportDate"`
	Version    int             `json:"version"`
}

type snapshotProvider struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewSnapshotProvider(db *DB, logger *logger.Logger) SnapshotProvider {
	return &snapshotProvider{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (p *snapshotProvider) Export(ctx context.Context) (models.Snapshot, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, selectCollections)
	if err != nil {
		log.Err(err).Str("func", "snapshotProvider.Export").Msg("failed to query collections")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	collections := make(map[string]json.RawMessage, len(plannerCollections))
	for name, empty := range plannerCollections {
		collections[name] = empty
	}

	for rows.Next() {
		var name, body string
		if err = rows.Scan(&name, &body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if _, ok := plannerCollections[name]; ok {
			collections[name] = json.RawMessage(body)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	snapshot, err := json.Marshal(plannerSnapshot{
		Columns:    collections["columns"],
		Calendar:   collections["calendar"],
		Settings:   collections["settings"],
		Weeks:      collections["weeks"],
		ExportDate: p.now().UTC(),
		Version:    SnapshotFormatVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding snapshot: %w", err)
	}

	return models.Snapshot(snapshot), nil
}

// Import overwrites the whole local dataset. Collections absent from the
// snapshot are cleared. The revision stays untouched so the import is not
// mistaken for a local edit.
func (p *snapshotProvider) Import(ctx context.Context, snapshot models.Snapshot) error {
	log := logger.FromContext(ctx)

	var incoming map[string]json.RawMessage
	if err := json.Unmarshal(snapshot, &incoming); err != nil || incoming == nil {
		return models.ErrInvalidSnapshot
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err = tx.ExecContext(ctx, deleteCollections); err != nil {
		log.Err(err).Str("func", "snapshotProvider.Import").Msg("failed to clear collections")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	now := p.now().UTC()
	for name := range plannerCollections {
		body, ok := incoming[name]
		if !ok || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
			continue
		}
		if _, err = tx.ExecContext(ctx, upsertCollection, name, string(body), now); err != nil {
			log.Err(err).Str("func", "snapshotProvider.Import").Str("collection", name).Msg("failed to write collection")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (p *snapshotProvider) Put(ctx context.Context, collection string, body json.RawMessage) error {
	if _, ok := plannerCollections[collection]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if !json.Valid(body) {
		return models.ErrInvalidSnapshot
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err = tx.ExecContext(ctx, upsertCollection, collection, string(body), p.now().UTC()); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err = tx.ExecContext(ctx, bumpRevision); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (p *snapshotProvider) Revision(ctx context.Context) (int64, error) {
	var revision int64
	if err := p.DB.QueryRowContext(ctx, selectRevision).Scan(&revision); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return revision, nil
}
