package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a user-submitted waste/pollution incident. City and state are
// copied from the owner at creation time and never recomputed, even if the
// owner later relocates.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"not null;size:30;index" json:"category"`
	Severity    string    `gorm:"not null;size:20;default:'medium';index" json:"severity"`
	ImageURL    string    `gorm:"size:500" json:"image_url,omitempty"`
	State       string    `gorm:"not null;size:100" json:"state"`
	City        string    `gorm:"not null;size:100;index" json:"city"`
	Status      string    `gorm:"not null;size:20;default:'open'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

var reportCategories = map[string]bool{
	"plastic": true, "electronic": true, "industrial": true,
	"organic": true, "hazardous": true, "medical": true, "other": true,
}

var reportSeverities = map[string]bool{
	SeverityLow: true, SeverityMedium: true, SeverityHigh: true, SeverityCritical: true,
}

var reportStatuses = map[string]bool{
	StatusOpen: true, StatusInProgress: true, StatusResolved: true, StatusRejected: true,
}

func ValidCategory(c string) bool { return reportCategories[c] }
func ValidSeverity(s string) bool { return reportSeverities[s] }
func ValidStatus(s string) bool   { return reportStatuses[s] }
