package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx response into an [*APIError]. The backend
// "message" (or "error") field is passed through unchanged; otherwise
// fallback is used.
func mapHTTPError(resp *resty.Response, fallback string) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	message := extractMessage(resp.Body())
	if message == "" {
		message = fallback
	}

	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    message,
		cause:      statusSentinel(resp.StatusCode()),
	}
}

func statusSentinel(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return fmt.Errorf("%w: http %d", ErrUnexpectedStatus, code)
	}
}

func extractMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, raw := range []json.RawMessage{payload.Message, payload.Error} {
		var s string
		if len(raw) > 0 && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
			return s
		}
	}

	return ""
}

// transportError wraps a failure that produced no usable response.
func transportError(cause error) error {
	return &APIError{
		Message: MsgUnexpected,
		cause:   fmt.Errorf("%w: %w", ErrTransport, cause),
	}
}
