package dto

// SuccessResponse represents a plain confirmation body
type SuccessResponse struct {
	Message string `json:"message" example:"deleted"`
}
