package middleware

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the body written by middleware that rejects a request.
type errorResponse struct {
	Error string `json:"error"`
}

// validationResponse lists every rule a request body broke.
type validationResponse struct {
	Errors []string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
