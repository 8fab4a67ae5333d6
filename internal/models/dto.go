package models

// ErrorResponse is the JSON error body returned by all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse is the JSON body for write operations without a richer
// payload.
type SuccessResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId,omitempty"`
}
