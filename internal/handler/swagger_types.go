package handler

import "pdfcompare/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"comparison deleted"`
}

// ComparisonWithDownloadURL represents a comparison with its output download URL.
type ComparisonWithDownloadURL struct {
	Comparison  domain.Comparison `json:"comparison"`
	DownloadURL string            `json:"download_url,omitempty" example:"https://s3.amazonaws.com/pdfcompare/comparisons/...?X-Amz-Signature=..."`
}

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
