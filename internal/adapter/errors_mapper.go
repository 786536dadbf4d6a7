package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-file-vault/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	message := errorMessage(resp)

	var statusErr error
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		statusErr = ErrBadRequest
	case http.StatusUnauthorized:
		statusErr = ErrUnauthorized
	case http.StatusNotFound:
		statusErr = ErrNotFound
	case http.StatusConflict:
		statusErr = ErrConflict
	case http.StatusRequestEntityTooLarge:
		statusErr = ErrTooLarge
	case http.StatusInternalServerError:
		statusErr = ErrInternalServerError
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), message)
	}

	if reason, ok := messageErrors[message]; ok {
		return fmt.Errorf("%w: %w", statusErr, reason)
	}
	return fmt.Errorf("%w: %s", statusErr, message)
}

// errorMessage extracts the "error" field of a JSON error body and falls
// back to the raw body or the status text.
func errorMessage(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))

	var errResp models.ErrorResponse
	if err := json.Unmarshal([]byte(body), &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	if body == "" {
		return http.StatusText(resp.StatusCode())
	}
	return body
}
