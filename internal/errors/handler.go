package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"chinacal/internal/calendar"
)

// ErrorHandler provides centralized error handling for the HTTP layer.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError maps an error to its API envelope and writes the response.
// Caller input errors stay at debug level; anything unexpected is logged
// as an error and surfaced as a 500, never swallowed.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	apiErr := h.toAPIError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	} else {
		h.logger.DebugContext(r.Context(), "request rejected",
			slog.String("detail", apiErr.Detail),
			slog.String("path", r.URL.Path),
		)
	}

	render.Render(w, r, apiErr)
}

func (h *ErrorHandler) toAPIError(err error) *APIError {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, calendar.ErrInvalidRange):
		return InvalidRange()
	case errors.Is(err, calendar.ErrOutOfRange):
		// Caller asked about a date the table cannot classify.
		return New(http.StatusBadRequest, err.Error())
	default:
		return ErrInternalServer
	}
}
