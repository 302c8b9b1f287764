package dto

import "time"

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// APIResponse is the standard envelope for successful responses
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// ListResponse wraps a list payload with its length
type ListResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

// NewListResponse builds a ListResponse for a slice payload
func NewListResponse(items interface{}, count int) *ListResponse {
	return &ListResponse{Items: items, Count: count}
}
