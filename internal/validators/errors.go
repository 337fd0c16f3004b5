package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyData             = errors.New("data is required")
	ErrInvalidData           = errors.New("data is not valid JSON")
	ErrInvalidClientVersion  = errors.New("invalid client version")
	ErrInvalidServerURL      = errors.New("invalid server URL")
	ErrSecretKeyTooShort     = errors.New("secret key is too short")
	ErrInvalidSyncInterval   = errors.New("invalid sync interval")
	ErrSnapshotSchemaMissing = errors.New("snapshot schema is not compiled")
	ErrSnapshotShape         = errors.New("snapshot does not match planner layout")
)
