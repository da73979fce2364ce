// Package shared centralizes the JSON envelopes used by all handlers so error
// translation stays consistent across features.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "taskdeck/pkg/domain-errors"
)

// ErrorResponse is the wire form of every error. Codes are stable and
// machine-readable; messages are for humans. Storage details never leak.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError translates a domain error into its HTTP envelope.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   string(code),
		Message: dErrors.MessageOf(err),
	})
}

// WriteJSON writes a success payload.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
