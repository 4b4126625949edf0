package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rpggio/propcatalog/internal/domain/catalog"
)

// Error codes carried in the error envelope.
const (
	codeNotLoaded         = "CATALOG_NOT_LOADED"
	codeFetchFailed       = "CATALOG_FETCH_FAILED"
	codeProjectNotFound   = "PROJECT_NOT_FOUND"
	codeDeveloperNotFound = "DEVELOPER_NOT_FOUND"
	codeInvalidView       = "INVALID_VIEW"
	codeInvalidInput      = "INVALID_INPUT"
	codeInternal          = "INTERNAL"
)

// APIError is the error object of a failed response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

// ErrorResponse wraps APIError. State is set when the catalog isn't loaded.
type ErrorResponse struct {
	State catalog.Phase `json:"state,omitempty"`
	Error APIError      `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message, hint string) {
	writeJSON(w, status, ErrorResponse{Error: APIError{Code: code, Message: message, RecoveryHint: hint}})
}

func writeNotLoaded(w http.ResponseWriter, phase catalog.Phase) {
	w.Header().Set("Retry-After", "1")
	writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
		State: phase,
		Error: APIError{Code: codeNotLoaded, Message: "catalog is " + string(phase), RecoveryHint: "Retry shortly"},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
