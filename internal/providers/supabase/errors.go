package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"iwannabeavolunteer/portal/internal/constants"
)

// ProviderError is returned for every failed provider call. Message carries the provider's
// own wording so handlers can relay it verbatim.
type ProviderError struct {
	Status  int
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err wraps a *ProviderError
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsNotFound reports whether the provider said the resource does not exist
func IsNotFound(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Code == constants.ErrCodeNotFound || pe.Code == constants.ErrCodeNoRows
}

// buildHTTPError creates a ProviderError from a non-2xx response
func buildHTTPError(statusCode int, operation string, body []byte) *ProviderError {
	msg := extractMessage(body)

	var code string
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = constants.ErrCodeInvalidAPIKey
	case http.StatusNotFound:
		code = constants.ErrCodeNotFound
	case http.StatusTooManyRequests:
		code = constants.ErrCodeRateLimited
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		code = constants.ErrCodeBadRequest
	default:
		code = constants.ErrCodeProviderFailed
	}

	if msg == "" {
		msg = fmt.Sprintf("%s (HTTP %d from %s)", constants.GetErrorMessage(code), statusCode, operation)
	}

	return &ProviderError{
		Status:  statusCode,
		Code:    code,
		Message: msg,
		Details: string(body),
	}
}

// extractMessage pulls the human-readable message out of an auth or table API error body.
// The auth API uses msg / error_description / error, the table API uses message.
func extractMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"msg", "message", "error_description", "error"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
