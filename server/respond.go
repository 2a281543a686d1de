package server

import (
	"encoding/json"
	"net/http"

	"github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// writeError maps the error taxonomy to HTTP status codes. The response
// body carries the taxonomy code, never internal detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, errors.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, errors.ErrUnauthenticated):
		status, code = http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, errors.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, errors.ErrTenantUnresolved):
		status, code = http.StatusBadRequest, "tenant_unresolved"
	case errors.Is(err, errors.ErrEmailAlreadyInUse):
		status, code = http.StatusConflict, "email_already_in_use"
	case errors.Is(err, errors.ErrTransient):
		status, code = http.StatusServiceUnavailable, "transient"
	case errors.Is(err, errors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	default:
		status, code = http.StatusInternalServerError, "internal"
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
	}

	if status < http.StatusInternalServerError {
		log.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{OK: false, Error: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{OK: false, Error: "invalid_body"})
		return false
	}
	return true
}
