// ABOUTME: JSON error responses for the manifest HTTP service.
// ABOUTME: Every non-2xx response carries the same ErrorResponse body.

package errors

import (
	"net/http"

	"github.com/goccy/go-json"
)

// ErrorResponse is the body of every error returned by the manifest service.
//
// Usage:
//
//	WriteError(w, http.StatusNotFound, ErrUnknownResource, `no page for resource "posts"`)
type ErrorResponse struct {
	Code    string `json:"code"`              // machine-readable, e.g. "unknown_resource"
	Message string `json:"message"`           // human-readable
	Status  int    `json:"status"`            // HTTP status code
	Field   string `json:"field,omitempty"`   // config path that caused the error
	Details string `json:"details,omitempty"` // extra context
}

// WriteError writes an ErrorResponse with the given status and code.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
	})
}

// WriteErrorWithField writes an ErrorResponse that points at a config path,
// such as "pages[2].create.fields".
func WriteErrorWithField(w http.ResponseWriter, status int, code, message, field string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
		Field:   field,
	})
}

// WriteErrorWithDetails writes an ErrorResponse with additional context.
func WriteErrorWithDetails(w http.ResponseWriter, status int, code, message, details string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
		Details: details,
	})
}

func writeErrorResponse(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}

// Error codes used by the manifest service.
const (
	ErrNotFound         = "not_found"
	ErrUnknownResource  = "unknown_resource"
	ErrUnknownAction    = "unknown_action"
	ErrMethodNotAllowed = "method_not_allowed"
	ErrInternal         = "internal_error"
)
