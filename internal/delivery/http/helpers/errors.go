package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"holidayplanner/internal/domain"
)

// StatusFor maps a domain error kind to its HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domain.ErrDenied):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrCodeUnavailable
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteDomainError writes err in the API envelope. Server-side failures are logged and
// their cause is not echoed to the client.
func WriteDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusFor(err)
	message := domain.Message(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		message = http.StatusText(status)
	}
	WriteJSONError(w, status, code, message)
}
