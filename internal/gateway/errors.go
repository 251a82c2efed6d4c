package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed request for the error-surface fallback
// chain: validation errors carry field details, not-found keeps its own
// kind for stale-reference reporting, everything else is a plain request
// error.
type ErrorKind string

const (
	KindRequest    ErrorKind = "request"
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not-found"
)

// FieldDetail is one server-provided field-level error message.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a rejected request. Message is the server-provided message
// when present, else a generic localized fallback.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Details []FieldDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// genericFailure mirrors the fallback the admin UI shows when the server
// says nothing useful.
const genericFailure = "Yêu cầu thất bại"

func newAPIError(status int, message string, details []FieldDetail) *APIError {
	kind := KindRequest
	switch {
	case status == http.StatusNotFound:
		kind = KindNotFound
	case len(details) > 0:
		kind = KindValidation
	}
	if message == "" {
		message = genericFailure
	}
	return &APIError{Kind: kind, Status: status, Message: message, Details: details}
}

// UserMessage resolves the text to surface for err: the first structured
// field detail, then the server message, then fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Details) > 0 && apiErr.Details[0].Message != "" {
			return apiErr.Details[0].Message
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}
