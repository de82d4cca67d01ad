package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/daybook/internal/apperr"
	"github.com/starford/daybook/internal/identity"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// statusFor maps the error taxonomy onto HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated),
		errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrInvalidToken),
		errors.Is(err, identity.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrConnectionUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, identity.ErrSessionsDisabled):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrAlreadyExists),
		errors.Is(err, apperr.ErrAlreadyAuthenticated):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError reports err with its user-facing message. Unclassified errors
// are logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := apperr.Message(err)
	switch {
	case status == http.StatusInternalServerError:
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrSessionsDisabled):
		msg = err.Error()
	}
	writeJSON(w, status, errorBody(msg))
}

// decodeJSON reads a bounded JSON body into T.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return v, false
	}
	return v, true
}
