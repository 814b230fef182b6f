package dto

// APIResponse is the envelope for every JSON response: exactly one of Data or Error is set
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// NewSuccessResponse wraps data in the response envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Data: data}
}
