package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/planner-sync/models"
)

func TestSnapshotValidator(t *testing.T) {
	v, err := NewSnapshotValidator()
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name     string
		snapshot models.Snapshot
		wantErr  error
	}{
		{
			name:     "full planner export",
			snapshot: models.Snapshot(`{"columns":[{"id":"c1"}],"calendar":{"2026-01-01":[]},"settings":{"darkMode":true},"weeks":[],"exportDate":"2026-01-01T00:00:00Z","version":2}`),
		},
		{name: "empty object", snapshot: models.Snapshot(`{}`)},
		{name: "null collections", snapshot: models.Snapshot(`{"columns":null,"weeks":null}`)},
		{name: "extra keys", snapshot: models.Snapshot(`{"legacy":1}`)},
		{name: "empty", snapshot: nil, wantErr: ErrEmptyData},
		{name: "null", snapshot: models.Snapshot(`null`), wantErr: ErrEmptyData},
		{name: "broken json", snapshot: models.Snapshot(`{"columns":`), wantErr: ErrInvalidData},
		{name: "array at top level", snapshot: models.Snapshot(`[1]`), wantErr: ErrSnapshotShape},
		{name: "columns not an array", snapshot: models.Snapshot(`{"columns":{}}`), wantErr: ErrSnapshotShape},
		{name: "calendar not an object", snapshot: models.Snapshot(`{"calendar":[]}`), wantErr: ErrSnapshotShape},
		{name: "version zero", snapshot: models.Snapshot(`{"version":0}`), wantErr: ErrSnapshotShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.snapshot)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSnapshotValidator_RejectsOtherInput(t *testing.T) {
	v, err := NewSnapshotValidator()
	require.NoError(t, err)

	assert.ErrorIs(t, v.Validate(context.Background(), "{}"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), models.Snapshot(`{}`), FieldData), ErrUnknownField)

	s := models.Snapshot(`{"weeks":[]}`)
	assert.NoError(t, v.Validate(context.Background(), &s))
}
