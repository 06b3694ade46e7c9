// Package errors defines the request-scoped error envelope returned by the
// API. Every validation failure surfaces to the caller as an HTTP 400 with
// a human-readable detail string; nothing in here is process-fatal.
package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/render"
)

// APIError is a structured API error rendered as {"detail": "..."}.
type APIError struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Detail
}

// Render implements render.Renderer for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates an APIError with the given status and detail message.
func New(statusCode int, detail string) *APIError {
	return &APIError{StatusCode: statusCode, Detail: detail}
}

// Predefined errors for fixed transport-level responses.
var (
	ErrNotFound         = New(http.StatusNotFound, "Not Found")
	ErrMethodNotAllowed = New(http.StatusMethodNotAllowed, "Method Not Allowed")
	ErrInternalServer   = New(http.StatusInternalServerError, "Internal Server Error")
)

// Validation error constructors, one per taxonomy entry.

// InvalidDateFormat rejects a date literal that is not strict YYYY-MM-DD.
func InvalidDateFormat(literal string) *APIError {
	return New(http.StatusBadRequest, fmt.Sprintf("Invalid date format: %s. Expected YYYY-MM-DD.", literal))
}

// InvalidRange rejects a range whose end precedes its start.
func InvalidRange() *APIError {
	return New(http.StatusBadRequest, "end date must not be earlier than start date")
}

// MissingDateParameters rejects a request that supplies neither an explicit
// date list nor a start/end range.
func MissingDateParameters() *APIError {
	return New(http.StatusBadRequest, "Provide either repeated 'dates' parameters or both 'start' and 'end'.")
}

// MissingParameter rejects a request lacking a required single parameter.
func MissingParameter(name string) *APIError {
	return New(http.StatusBadRequest, fmt.Sprintf("'%s' query parameter is required for this endpoint.", name))
}

// MissingRangeParameters rejects a range endpoint call without start+end.
func MissingRangeParameters() *APIError {
	return New(http.StatusBadRequest, "'start' and 'end' query parameters are required for this endpoint.")
}

// UnknownTypeSelector rejects an unrecognized type selector, listing the
// supported names in sorted order.
func UnknownTypeSelector(value string, supported []string) *APIError {
	names := append([]string(nil), supported...)
	sort.Strings(names)
	return New(http.StatusBadRequest, fmt.Sprintf("Unknown type '%s'. Supported types: %s.", value, strings.Join(names, ", ")))
}

// InvalidBoolean rejects unrecognized boolean text.
func InvalidBoolean() *APIError {
	return New(http.StatusBadRequest, "Boolean parameters accept true/false/1/0/yes/no/on/off")
}
