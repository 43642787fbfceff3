package api

import (
	"errors"
	"net/http"

	"voting-service/internal/domain/vote"
	"voting-service/internal/platform/apperr"
	"voting-service/internal/platform/database"
)

const msgDatabaseUnavailable = "Database connection failed"

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	appErr := mapError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"code", appErr.Code,
			"error", appErr.Unwrap(),
		)
	}
	writeJSON(w, appErr.StatusCode(), appErr)
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, database.ErrUnavailable):
		return apperr.Internal("db_unavailable", msgDatabaseUnavailable, err)
	case errors.Is(err, vote.ErrChoiceRequired):
		return apperr.BadRequest("invalid_input", "choice is required", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
