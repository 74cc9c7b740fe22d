package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/qaforum/qaforum-go/internal/apperr"
	"github.com/qaforum/qaforum-go/internal/moderation"
)

const (
	msgInvalidCredentials = "invalid email or password"
	msgInvalidToken       = "invalid or expired token"
	msgModerationDown     = "moderation service unavailable"
	msgInternal           = "internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeError is the single place where core errors become HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse(msg))
}

// statusFor maps an error to its status code and client-facing message.
func statusFor(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindCredential:
		return http.StatusUnauthorized, msgInvalidCredentials
	case apperr.KindToken:
		return http.StatusUnauthorized, msgInvalidToken
	case apperr.KindValidation:
		return http.StatusBadRequest, message(err)
	case apperr.KindNotFound:
		return http.StatusNotFound, message(err)
	case apperr.KindForbidden:
		return http.StatusForbidden, message(err)
	case apperr.KindConflict:
		return http.StatusConflict, message(err)
	case apperr.KindExternal:
		return externalStatus(err)
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func externalStatus(err error) (int, string) {
	var fe *moderation.FilterError
	if errors.As(err, &fe) {
		switch {
		case fe.Status >= 400 && fe.Status < 500:
			return fe.Status, fe.Message
		case fe.Status >= 500 && fe.Status < 600:
			return fe.Status, msgModerationDown
		default:
			return http.StatusBadGateway, msgModerationDown
		}
	}
	if errors.Is(err, moderation.ErrDecode) {
		return http.StatusBadGateway, msgModerationDown
	}
	return http.StatusServiceUnavailable, msgModerationDown
}

// message returns the categorized error's own message, without the
// wrapped cause.
func message(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) && e.Message() != "" {
		return e.Message()
	}
	return err.Error()
}
