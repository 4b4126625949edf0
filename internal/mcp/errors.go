package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/propcatalog/internal/domain/catalog"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/present"
)

// ErrDeveloperNotFound is returned when no project carries the requested
// developer name.
var ErrDeveloperNotFound = errors.New("developer not found")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, catalog.ErrNotLoaded):
		return &APIError{Code: "CATALOG_NOT_LOADED", Message: "catalog is still loading", RecoveryHint: "Check catalog_status and retry"}
	case errors.Is(err, catalog.ErrFetchFailed):
		return &APIError{Code: "CATALOG_FETCH_FAILED", Message: err.Error(), RecoveryHint: "Call refresh_catalog"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, ErrDeveloperNotFound):
		return &APIError{Code: "DEVELOPER_NOT_FOUND", Message: "developer not found", RecoveryHint: "Use list_developers for exact names"}
	case errors.Is(err, present.ErrUnknownView):
		return &APIError{Code: "INVALID_VIEW", Message: err.Error(), RecoveryHint: "Use new-launches or trending"}
	case errors.Is(err, project.ErrDuplicateID):
		return &APIError{Code: "DUPLICATE_PROJECT_ID", Message: err.Error(), RecoveryHint: "Fix the catalog source so ids are unique"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
