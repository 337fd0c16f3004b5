package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so callers get the full resty API.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a resty client with the given per-request timeout
// and User-Agent. Retries are disabled: the sync scheduler decides when to
// try again.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}

	return &HTTPClient{Client: client}
}
