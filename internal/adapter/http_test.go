// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/models"
)

const testKey = "ABCDEFGH"

func newTestAdapter(t *testing.T) ServerAdapter {
	t.Helper()
	return NewHTTPServerAdapter(
		config.ClientAdapter{RequestTimeout: 2 * time.Second},
		config.ClientApp{Version: "test"},
		logger.Nop(),
	)
}

// ── Health ──────────────────────────────────────────────────────────────────

func TestHealth_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		assert.Empty(t, r.Header.Get(SecretKeyHeader))
		assert.Equal(t, "planner-sync/test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"status":"ok","database":"connected","timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t).Health(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "connected", got.Database)
}

func TestHealth_TrailingSlashURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t).Health(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "degraded", got.Status)
}

func TestHealth_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t).Health(context.Background(), url)
	require.Error(t, err)
}

func TestEmptyServerURL(t *testing.T) {
	_, err := newTestAdapter(t).GetData(context.Background(), "  ", testKey)
	assert.ErrorIs(t, err, ErrEmptyServerURL)
}

// ── GetData ─────────────────────────────────────────────────────────────────

func TestGetData_SendsSecretKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sync/data", r.URL.Path)
		assert.Equal(t, testKey, r.Header.Get(SecretKeyHeader))
		_, _ = w.Write([]byte(`{"exists":true,"data":{"a":2},"version":2,"lastSync":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t).GetData(context.Background(), srv.URL, testKey)
	require.NoError(t, err)
	assert.True(t, got.Exists)
	assert.Equal(t, int64(2), got.Version)
	assert.JSONEq(t, `{"a":2}`, string(got.Data))
	require.NotNil(t, got.LastSync)
}

func TestGetData_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid or missing secret key"}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t).GetData(context.Background(), srv.URL, "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid or missing secret key")
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestPush_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sync/push", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.JSONEq(t, `{"a":1}`, string(body["data"]))
		assert.JSONEq(t, `0`, string(body["clientVersion"]))

		_, _ = w.Write([]byte(`{"success":true,"version":1,"lastSync":"2026-01-01T00:00:00Z","message":"Initial sync completed"}`))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t).Push(context.Background(), srv.URL, testKey, models.PushRequest{Data: models.Snapshot(`{"a":1}`)})
	require.NoError(t, err)
	assert.True(t, got.Success)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, "Initial sync completed", got.Message)
}

func TestPush_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"No data provided"}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t).Push(context.Background(), srv.URL, testKey, models.PushRequest{Data: models.Snapshot(`{}`)})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestPush_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"Too many requests","retryAfter":42}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t).Push(context.Background(), srv.URL, testKey, models.PushRequest{Data: models.Snapshot(`{}`)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRequests)

	var rateErr *RateLimitError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, 42, rateErr.RetryAfter)
	assert.Equal(t, "Too many requests", rateErr.Message)
}

// ── Pull ────────────────────────────────────────────────────────────────────

func TestPull_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync/pull", r.URL.Path)

		var req models.PullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(1), req.ClientVersion)

		_, _ = w.Write([]byte(`{"exists":true,"data":{"b":3},"version":3,"hasConflict":true,"message":"Conflict detected"}`))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t).Pull(context.Background(), srv.URL, testKey, models.PullRequest{ClientVersion: 1})
	require.NoError(t, err)
	assert.True(t, got.Exists)
	assert.True(t, got.HasConflict)
	assert.Equal(t, int64(3), got.Version)
}

func TestPull_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t).Pull(context.Background(), srv.URL, testKey, models.PullRequest{})
	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestPull_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t).Pull(context.Background(), srv.URL, testKey, models.PullRequest{})
	assert.ErrorIs(t, err, ErrDecodingResponse)
}

// ── Delete ──────────────────────────────────────────────────────────────────

func TestDelete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/sync/data", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"message":"Data deleted"}`))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t).Delete(context.Background(), srv.URL, testKey)
	require.NoError(t, err)
	assert.True(t, got.Success)
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	a := NewHTTPServerAdapter(config.ClientAdapter{RequestTimeout: 50 * time.Millisecond}, config.ClientApp{}, logger.Nop())
	_, err := a.Health(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "https://onda-39t4.onrender.com", want: "https://onda-39t4.onrender.com"},
		{in: "https://sync.example.com/", want: "https://sync.example.com"},
		{in: "sync.example.com", want: "https://sync.example.com"},
		{in: "http://127.0.0.1:3001", want: "http://127.0.0.1:3001"},
		{in: "", wantErr: ErrEmptyServerURL},
		{in: "http://", wantErr: ErrInvalidServerURL},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
