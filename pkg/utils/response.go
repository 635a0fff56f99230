package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// FieldErrors maps a field name to its messages, in rule order.
type FieldErrors map[string][]string

// WriteFieldErrors renders the error envelope shared by every failure:
// {"errors": {"fields": {...}}}.
func WriteFieldErrors(w http.ResponseWriter, status int, fields FieldErrors) {
	WriteJSON(w, status, map[string]any{
		"errors": map[string]any{"fields": fields},
	})
}

// WriteError renders a single message under the "base" field.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteFieldErrors(w, status, FieldErrors{"base": {message}})
}

// WriteNoContent answers 204 with an empty body.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
