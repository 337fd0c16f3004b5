// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/models"
)

// syncService is the concrete implementation of SyncService on top of a
// DocumentStore. Version assignment is delegated to the store, which does it
// atomically.
type syncService struct {
	documents store.DocumentStore

	logger *logger.Logger
}

func NewSyncService(documents store.DocumentStore, logger *logger.Logger) SyncService {
	return &syncService{
		documents: documents,
		logger:    logger,
	}
}

func (s *syncService) GetData(ctx context.Context, secretKey string) (models.DataResponse, error) {
	doc, err := s.documents.GetDocument(ctx, secretKey)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return models.DataResponse{Exists: false, Message: MsgNoDataForKey}, nil
	}
	if err != nil {
		return models.DataResponse{}, fmt.Errorf("get document: %w", err)
	}

	lastSync := doc.LastSync
	return models.DataResponse{
		Exists:   true,
		Data:     doc.Content,
		Version:  doc.Version,
		LastSync: &lastSync,
	}, nil
}

func (s *syncService) Push(ctx context.Context, secretKey string, req models.PushRequest) (models.PushResponse, error) {
	if req.Data.IsEmpty() {
		return models.PushResponse{}, ErrNoDataProvided
	}

	result, err := s.documents.PushDocument(ctx, secretKey, req.Data)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("push document: %w", err)
	}

	message := MsgSyncCompleted
	if result.Created {
		message = MsgInitialSyncCompleted
	}

	s.logger.Info().
		Str("key", logger.MaskSecret(secretKey)).
		Int64("client_version", req.ClientVersion).
		Int64("server_version", result.Version).
		Bool("initial", result.Created).
		Msg("push completed")

	return models.PushResponse{
		Success:  true,
		Version:  result.Version,
		LastSync: result.LastSync,
		Message:  message,
	}, nil
}

func (s *syncService) Pull(ctx context.Context, secretKey string, req models.PullRequest) (models.PullResponse, error) {
	doc, err := s.documents.GetDocument(ctx, secretKey)
	if errors.Is(err, store.ErrDocumentNotFound) {
		s.logger.Debug().Str("key", logger.MaskSecret(secretKey)).Msg("pull: no data on server")
		return models.PullResponse{Exists: false, Message: MsgNoDataOnServer}, nil
	}
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("get document: %w", err)
	}

	hasConflict := req.ClientVersion < doc.Version
	message := MsgDataUpToDate
	if hasConflict {
		message = MsgConflictDetected
	}

	s.logger.Info().
		Str("key", logger.MaskSecret(secretKey)).
		Int64("client_version", req.ClientVersion).
		Int64("server_version", doc.Version).
		Bool("conflict", hasConflict).
		Msg("pull completed")

	lastSync := doc.LastSync
	return models.PullResponse{
		Exists:      true,
		Data:        doc.Content,
		Version:     doc.Version,
		LastSync:    &lastSync,
		HasConflict: hasConflict,
		Message:     message,
	}, nil
}

func (s *syncService) Delete(ctx context.Context, secretKey string) (models.DeleteResponse, error) {
	if err := s.documents.DeleteDocument(ctx, secretKey); err != nil {
		return models.DeleteResponse{}, fmt.Errorf("delete document: %w", err)
	}

	return models.DeleteResponse{Success: true, Message: MsgDataDeleted}, nil
}
