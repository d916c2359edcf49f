package api

import (
	"net/http"

	"github.com/taskboard/taskboard-api/internal/api/shared"
)

// This file re-exports shared helpers so handlers read cleanly without the
// package qualifier.

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return shared.DecodeJSON(r, v)
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	shared.RespondWithJSON(w, r, status, data)
}

// RespondWithError writes a JSON error response with the given status code and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	shared.RespondWithError(w, r, status, message)
}

// RespondWithErrorAndLog writes a sanitized JSON error response and logs the
// underlying error with trace correlation.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, userMessage string, err error) {
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
