package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Content kinds served by the city content cache.
const (
	ContentKindNews     = "news"
	ContentKindBriefing = "briefing"
)

// CachedContent is one externally-generated content item for a city. Rows are
// never updated; staleness is a read-time predicate on CreatedAt, so old rows
// simply stop being served when a fresher batch lands.
type CachedContent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	City      string         `gorm:"not null;size:100;index:idx_cached_content_city_kind" json:"city"`
	Kind      string         `gorm:"not null;size:20;index:idx_cached_content_city_kind" json:"kind"`
	Title     string         `gorm:"size:255" json:"title"`
	Summary   string         `gorm:"type:text" json:"summary"`
	Severity  string         `gorm:"size:20" json:"severity"`
	Payload   datatypes.JSON `json:"-"`
	Fallback  bool           `gorm:"default:false" json:"fallback"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}
