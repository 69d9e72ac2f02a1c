package dto

import (
	"time"

	"github.com/google/uuid"
)

// Content feed sources.
const (
	ContentSourceCache    = "cache"
	ContentSourceProvider = "provider"
)

type ContentItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Severity  string    `json:"severity"`
	Fallback  bool      `json:"fallback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ContentFeedResponse struct {
	City   string        `json:"city"`
	Kind   string        `json:"kind"`
	Source string        `json:"source"`
	Items  []ContentItem `json:"items"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
