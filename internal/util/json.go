package util

import (
	"encoding/json"
	"net/http"

	"github.com/debemdeboas/inkwell/internal/config"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Slug    string `json:"slug,omitempty"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError sends {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) error {
	return WriteJSON(w, status, ErrorResponse{Error: msg})
}
