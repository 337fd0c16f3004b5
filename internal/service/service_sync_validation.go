package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/planner-sync/internal/validators"
	"github.com/MKhiriev/planner-sync/models"
)

type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

func NewSyncValidationService(minSecretKeyLength int) SyncServiceWrapper {
	return &SyncValidationService{
		validator: validators.NewSyncValidator(minSecretKeyLength),
	}
}

func (v *SyncValidationService) GetData(ctx context.Context, secretKey string) (models.DataResponse, error) {
	return v.inner.GetData(ctx, secretKey)
}

func (v *SyncValidationService) Push(ctx context.Context, secretKey string, req models.PushRequest) (models.PushResponse, error) {
	if err := v.validator.Validate(ctx, req, validators.FieldData, validators.FieldClientVersion); err != nil {
		if errors.Is(err, validators.ErrEmptyData) {
			return models.PushResponse{}, fmt.Errorf("%w: %w", ErrNoDataProvided, err)
		}
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Push(ctx, secretKey, req)
}

func (v *SyncValidationService) Pull(ctx context.Context, secretKey string, req models.PullRequest) (models.PullResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Pull(ctx, secretKey, req)
}

func (v *SyncValidationService) Delete(ctx context.Context, secretKey string) (models.DeleteResponse, error) {
	return v.inner.Delete(ctx, secretKey)
}

func (v *SyncValidationService) Wrap(wrapped SyncService) SyncService {
	v.inner = wrapped
	return v
}
