// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/planner-sync/internal/adapter"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/internal/validators"
	"github.com/MKhiriev/planner-sync/models"
)

type syncOperations struct {
	server    adapter.ServerAdapter
	snapshots store.SnapshotProvider
	validator validators.Validator
	logger    *logger.Logger
}

// NewSyncOperations builds the network boundary. snapshotValidator checks a
// pulled snapshot before it may overwrite local data.
func NewSyncOperations(server adapter.ServerAdapter, snapshots store.SnapshotProvider, snapshotValidator validators.Validator, logger *logger.Logger) SyncOperations {
	return &syncOperations{
		server:    server,
		snapshots: snapshots,
		validator: snapshotValidator,
		logger:    logger,
	}
}

func (o *syncOperations) PullFromServer(ctx context.Context, serverURL, secretKey string, localVersion int64, lastSync *time.Time) models.PullResult {
	resp, err := o.server.Pull(ctx, serverURL, secretKey, models.PullRequest{
		ClientVersion:  localVersion,
		ClientLastSync: lastSync,
	})
	if err != nil {
		o.logger.Warn().Err(err).Str("func", "*syncOperations.PullFromServer").Msg("pull failed")
		return models.PullResult{Status: models.StatusError, HasNewData: false, Message: describeAdapterError(err)}
	}

	if !resp.Exists {
		return models.PullResult{Status: models.StatusSuccess, HasNewData: false, Message: resp.Message}
	}

	return models.PullResult{
		Status:      models.StatusSuccess,
		HasNewData:  resp.Version > localVersion,
		Data:        resp.Data,
		Version:     resp.Version,
		LastSync:    resp.LastSync,
		HasConflict: resp.HasConflict,
		Message:     resp.Message,
	}
}

// PushToServer reads the revision before exporting, so an edit racing the
// export is at worst pushed twice and never recorded as synced unseen.
func (o *syncOperations) PushToServer(ctx context.Context, serverURL, secretKey string, localVersion int64) models.PushResult {
	revision, err := o.snapshots.Revision(ctx)
	if err != nil {
		o.logger.Err(err).Str("func", "*syncOperations.PushToServer").Msg("error reading local revision")
		return models.PushResult{Success: false, Message: fmt.Sprintf("error reading local revision: %v", err)}
	}

	snapshot, err := o.snapshots.Export(ctx)
	if err != nil {
		o.logger.Err(err).Str("func", "*syncOperations.PushToServer").Msg("error exporting local data")
		return models.PushResult{Success: false, Message: fmt.Sprintf("error exporting local data: %v", err)}
	}

	resp, err := o.server.Push(ctx, serverURL, secretKey, models.PushRequest{
		Data:          snapshot,
		ClientVersion: localVersion,
	})
	if err != nil {
		o.logger.Warn().Err(err).Str("func", "*syncOperations.PushToServer").Msg("push failed")
		return models.PushResult{Success: false, Message: describeAdapterError(err)}
	}
	if !resp.Success {
		return models.PushResult{Success: false, Message: resp.Message}
	}

	lastSync := resp.LastSync
	return models.PushResult{
		Success:  true,
		Version:  resp.Version,
		LastSync: &lastSync,
		Message:  resp.Message,
		Revision: revision,
	}
}

func (o *syncOperations) LocalRevision(ctx context.Context) (int64, error) {
	return o.snapshots.Revision(ctx)
}

func (o *syncOperations) MergeServerData(ctx context.Context, snapshot models.Snapshot, serverVersion int64) models.OperationResult {
	log := o.logger.With().Int64("server_version", serverVersion).Logger()

	if err := o.validator.Validate(ctx, snapshot); err != nil {
		log.Warn().Err(err).Str("func", "*syncOperations.MergeServerData").Msg("rejected server snapshot")
		return models.OperationResult{Status: models.StatusError, Message: err.Error()}
	}

	if err := o.snapshots.Import(ctx, snapshot); err != nil {
		log.Err(err).Str("func", "*syncOperations.MergeServerData").Msg("error importing server snapshot")
		return models.OperationResult{Status: models.StatusError, Message: err.Error()}
	}

	return models.OperationResult{Status: models.StatusSuccess, Message: MsgDataMerged}
}

func (o *syncOperations) TestConnection(ctx context.Context, serverURL, secretKey string) models.TestConnectionResult {
	health, err := o.server.Health(ctx, serverURL)
	if err != nil {
		o.logger.Warn().Err(err).Str("func", "*syncOperations.TestConnection").Msg("health probe failed")
		return models.TestConnectionResult{Status: models.StatusError, Message: MsgServerNotResponding + ": " + describeAdapterError(err)}
	}

	if _, err = o.server.GetData(ctx, serverURL, secretKey); err != nil {
		return models.TestConnectionResult{
			Status:       models.StatusError,
			Message:      describeAdapterError(err),
			ServerStatus: health.Status,
		}
	}

	return models.TestConnectionResult{
		Status:       models.StatusSuccess,
		Message:      MsgConnectionSuccessful,
		ServerStatus: health.Status,
	}
}

func (o *syncOperations) DeleteFromServer(ctx context.Context, serverURL, secretKey string) models.OperationResult {
	resp, err := o.server.Delete(ctx, serverURL, secretKey)
	if err != nil {
		o.logger.Warn().Err(err).Str("func", "*syncOperations.DeleteFromServer").Msg("delete failed")
		return models.OperationResult{Status: models.StatusError, Message: describeAdapterError(err)}
	}
	return models.OperationResult{Status: models.StatusSuccess, Message: resp.Message}
}
