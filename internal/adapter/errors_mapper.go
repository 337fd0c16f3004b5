package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/planner-sync/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorMessage(resp.Body())

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", ErrRequestTooLarge, body)
	case http.StatusTooManyRequests:
		var errResp models.ErrorResponse
		_ = json.Unmarshal(resp.Body(), &errResp)
		return &RateLimitError{RetryAfter: errResp.RetryAfter, Message: body}
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode(), body)
	}
}

// errorMessage extracts the "error" field of a JSON error body, falling
// back to the trimmed raw body.
func errorMessage(raw []byte) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return strings.TrimSpace(string(raw))
}
