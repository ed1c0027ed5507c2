package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

// sanitizeInput trims and removes control characters except tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// validationMessage maps input errors to the text shown to the user.
// ok is false for anything that is not the caller's fault.
func validationMessage(err error, amountHint string) (msg string, ok bool) {
	switch {
	case errors.Is(err, core.ErrEmptyDescription):
		return "Please enter a valid description and amount", true
	case errors.Is(err, core.ErrDescriptionTooLong):
		return "Description is too long (max 200 characters)", true
	case errors.Is(err, core.ErrInvalidAmount):
		return amountHint, true
	default:
		return "", false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
