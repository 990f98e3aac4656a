package dto

// ErrorResponse is the error body shape the mobile client expects:
// {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error" example:"INE already used"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
