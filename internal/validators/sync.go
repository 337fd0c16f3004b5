package validators

import (
	"context"
	"net/url"

	"github.com/MKhiriev/planner-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldData targets the snapshot carried by a push.
	FieldData = "data"

	// FieldClientVersion targets the version the client reports.
	FieldClientVersion = "client_version"

	// FieldServerURL targets the sync server base URL of a client config.
	FieldServerURL = "server_url"

	// FieldSecretKey targets the shared secret of a client config.
	FieldSecretKey = "secret_key"

	// FieldSyncInterval targets the auto-sync period of a client config.
	FieldSyncInterval = "sync_interval"
)

// SyncValidator implements Validator for the sync wire requests and the
// client sync configuration.
type SyncValidator struct {
	minSecretKeyLength int
}

// NewSyncValidator returns a Validator that requires secret keys of at least
// minSecretKeyLength characters.
func NewSyncValidator(minSecretKeyLength int) Validator {
	return &SyncValidator{minSecretKeyLength: minSecretKeyLength}
}

// Validate dispatches on the dynamic type of obj. Supported types are
// models.PushRequest, models.PullRequest, models.SyncConfig and
// models.SyncConfigUpdate, in value or pointer form.
func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PushRequest:
		return v.validatePushRequest(value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(*value, fields...)

	case models.PullRequest:
		return v.validatePullRequest(value, fields...)
	case *models.PullRequest:
		return v.validatePullRequest(*value, fields...)

	case models.SyncConfig:
		return v.validateSyncConfig(value, fields...)
	case *models.SyncConfig:
		return v.validateSyncConfig(*value, fields...)

	case models.SyncConfigUpdate:
		return v.validateSyncConfigUpdate(value)
	case *models.SyncConfigUpdate:
		return v.validateSyncConfigUpdate(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validatePushRequest(req models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldData, FieldClientVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldData:
			if req.Data.IsEmpty() {
				return ErrEmptyData
			}
			if !req.Data.Valid() {
				return ErrInvalidData
			}
		case FieldClientVersion:
			if req.ClientVersion < 0 {
				return ErrInvalidClientVersion
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validatePullRequest(req models.PullRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClientVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldClientVersion:
			if req.ClientVersion < 0 {
				return ErrInvalidClientVersion
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSyncConfig checks a config that is about to be used for network
// calls. By default only the fields needed to reach the server are checked.
func (v *SyncValidator) validateSyncConfig(cfg models.SyncConfig, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldServerURL, FieldSecretKey}
	}

	for _, f := range fields {
		switch f {
		case FieldServerURL:
			if err := validateServerURL(cfg.ServerURL); err != nil {
				return err
			}
		case FieldSecretKey:
			if len(cfg.SecretKey) < v.minSecretKeyLength {
				return ErrSecretKeyTooShort
			}
		case FieldSyncInterval:
			if cfg.SyncInterval <= 0 {
				return ErrInvalidSyncInterval
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSyncConfigUpdate checks only the fields that are set. An empty
// server URL or secret key is allowed: it unconfigures sync.
func (v *SyncValidator) validateSyncConfigUpdate(u models.SyncConfigUpdate) error {
	if u.ServerURL != nil && *u.ServerURL != "" {
		if err := validateServerURL(*u.ServerURL); err != nil {
			return err
		}
	}
	if u.SecretKey != nil && *u.SecretKey != "" && len(*u.SecretKey) < v.minSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	if u.SyncInterval != nil && *u.SyncInterval <= 0 {
		return ErrInvalidSyncInterval
	}

	return nil
}

func validateServerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ErrInvalidServerURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidServerURL
	}
	return nil
}
