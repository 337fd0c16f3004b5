package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyServerURL      = errors.New("empty server URL")
	ErrInvalidServerURL    = errors.New("invalid server URL")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrRequestTooLarge     = errors.New("request too large")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
	ErrDecodingResponse    = errors.New("decoding response")
)

// RateLimitError is returned on 429. It matches ErrTooManyRequests with
// errors.Is and carries the server's retryAfter hint in seconds.
type RateLimitError struct {
	RetryAfter int
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: retry after %ds", ErrTooManyRequests, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrTooManyRequests
}
