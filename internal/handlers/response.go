package handlers

import (
	"time"

	"snapfeed/internal/models"
)

// PostResponse is the success envelope for a created post.
type PostResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *models.Post `json:"data"`
}

// PostListResponse is the success envelope for a listing, with a count
// alongside the ordered records.
type PostListResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Count   int           `json:"count"`
	Data    []models.Post `json:"data"`
}

// HealthResponse is returned by the health probe.
type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
