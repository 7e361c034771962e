package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/forohub/internal/api/httpx"
	"github.com/baharkarakas/forohub/internal/api/validate"
	"github.com/baharkarakas/forohub/internal/middleware"
	"github.com/baharkarakas/forohub/internal/services"
)

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if fields, ok := validate.FromError(err); ok {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "validation failed", fields)
		return
	}
	switch {
	case errors.Is(err, services.ErrDuplicateTopic):
		httpx.WriteError(w, http.StatusBadRequest, "duplicate_resource", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCourse):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication failed", nil)
	case errors.Is(err, services.ErrTopicNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrNoMessages):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrTopicClosed):
		httpx.WriteError(w, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFrom(r.Context()),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

func writeBadBody(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
}
