package dto

// MessageResponse carries an informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents a single error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists every problem found with a request.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
