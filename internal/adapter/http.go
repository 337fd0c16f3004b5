package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/utils"
	"github.com/MKhiriev/planner-sync/models"
)

// SecretKeyHeader carries the shared secret on every /sync request.
const SecretKeyHeader = "x-secret-key"

type httpServerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the resty implementation of
// [ServerAdapter]. Every request is bounded by adapterCfg.RequestTimeout in
// addition to the caller's context.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) ServerAdapter {
	userAgent := "planner-sync"
	if appCfg.Version != "" {
		userAgent += "/" + appCfg.Version
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(adapterCfg.RequestTimeout, userAgent),
		logger: logger,
	}
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyServerURL
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidServerURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: address must include host and scheme", ErrInvalidServerURL)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Health implements [ServerAdapter].
func (h *httpServerAdapter) Health(ctx context.Context, serverURL string) (models.HealthResponse, error) {
	var health models.HealthResponse
	if err := h.do(ctx, serverURL, "", resty.MethodGet, "/health", nil, &health); err != nil {
		return models.HealthResponse{}, err
	}
	return health, nil
}

// GetData implements [ServerAdapter].
func (h *httpServerAdapter) GetData(ctx context.Context, serverURL, secretKey string) (models.DataResponse, error) {
	var data models.DataResponse
	if err := h.do(ctx, serverURL, secretKey, resty.MethodGet, "/sync/data", nil, &data); err != nil {
		return models.DataResponse{}, err
	}
	return data, nil
}

// Push implements [ServerAdapter].
func (h *httpServerAdapter) Push(ctx context.Context, serverURL, secretKey string, req models.PushRequest) (models.PushResponse, error) {
	var pushed models.PushResponse
	if err := h.do(ctx, serverURL, secretKey, resty.MethodPost, "/sync/push", req, &pushed); err != nil {
		return models.PushResponse{}, err
	}
	return pushed, nil
}

// Pull implements [ServerAdapter].
func (h *httpServerAdapter) Pull(ctx context.Context, serverURL, secretKey string, req models.PullRequest) (models.PullResponse, error) {
	var pulled models.PullResponse
	if err := h.do(ctx, serverURL, secretKey, resty.MethodPost, "/sync/pull", req, &pulled); err != nil {
		return models.PullResponse{}, err
	}
	return pulled, nil
}

// Delete implements [ServerAdapter].
func (h *httpServerAdapter) Delete(ctx context.Context, serverURL, secretKey string) (models.DeleteResponse, error) {
	var deleted models.DeleteResponse
	if err := h.do(ctx, serverURL, secretKey, resty.MethodDelete, "/sync/data", nil, &deleted); err != nil {
		return models.DeleteResponse{}, err
	}
	return deleted, nil
}

// do sends one request and decodes a 2xx JSON body into result. An empty
// secretKey omits the auth header.
func (h *httpServerAdapter) do(ctx context.Context, serverURL, secretKey, method, path string, body, result any) error {
	baseURL, err := normalizeBaseURL(serverURL)
	if err != nil {
		return err
	}

	req := h.client.R().SetContext(ctx)
	if secretKey != "" {
		req.SetHeader(SecretKeyHeader, secretKey)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, baseURL+path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}

	h.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("sync server answered")

	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("%w %s: %w", ErrDecodingResponse, path, err)
	}

	return nil
}
