package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wastewatch/wastewatch-backend/internal/dto"
	"github.com/wastewatch/wastewatch-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxContentItems = 5

// ContentService is a lazily refilled, time-windowed cache of
// externally-generated city content. Per (city, kind) it moves through
// EMPTY -> FRESH -> STALE and back to FRESH on refill; staleness is computed
// at read time from the age of the newest row, nothing is evicted.
type ContentService struct {
	db       *gorm.DB
	provider ContentProvider
	ttl      time.Duration
}

func NewContentService(db *gorm.DB, provider ContentProvider, ttl time.Duration) *ContentService {
	return &ContentService{db: db, provider: provider, ttl: ttl}
}

// Get serves cached content for a city while the newest entry is inside the
// validity window, and otherwise refills from the provider. A provider call
// that fails outright surfaces as ErrUpstreamUnavailable; a provider response
// that merely fails to parse degrades to a single fallback item and is never
// an error.
func (s *ContentService) Get(ctx context.Context, city, kind string) (*dto.ContentFeedResponse, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrValidation)
	}
	if kind != models.ContentKindNews && kind != models.ContentKindBriefing {
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrValidation, kind)
	}

	var newest models.CachedContent
	err := s.db.Where("city = ? AND kind = ?", city, kind).
		Order("created_at DESC").
		Take(&newest).Error
	switch {
	case err == nil:
		if time.Since(newest.CreatedAt) < s.ttl {
			return s.serveCached(city, kind)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// EMPTY: fall through to the first fill.
	default:
		return nil, storageErr("lookup cached content", err)
	}

	return s.refill(ctx, city, kind)
}

func (s *ContentService) serveCached(city, kind string) (*dto.ContentFeedResponse, error) {
	var rows []models.CachedContent
	err := s.db.Where("city = ? AND kind = ?", city, kind).
		Order("created_at DESC").
		Limit(maxContentItems).
		Find(&rows).Error
	if err != nil {
		return nil, storageErr("read cached content", err)
	}

	return &dto.ContentFeedResponse{
		City:   city,
		Kind:   kind,
		Source: dto.ContentSourceCache,
		Items:  mapContentItems(rows),
	}, nil
}

func (s *ContentService) refill(ctx context.Context, city, kind string) (*dto.ContentFeedResponse, error) {
	// Single attempt, no retry: retrying is the caller's call.
	text, err := s.provider.Generate(ctx, buildContentPrompt(city, kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	parsed := parseProviderItems(text)
	fallback := parsed == nil
	if fallback {
		// Malformed but present: degraded content beats an error. The raw
		// text is kept verbatim so nothing the provider said is lost.
		slog.Warn("provider content had no parseable payload, serving fallback", "city", city, "kind", kind)
		parsed = []providerContentItem{{
			Title:    fmt.Sprintf("Unverified %s update for %s", kind, city),
			Summary:  strings.TrimSpace(text),
			Severity: SeverityNeutral,
		}}
	}
	if len(parsed) > maxContentItems {
		parsed = parsed[:maxContentItems]
	}

	rows := make([]models.CachedContent, len(parsed))
	for i, item := range parsed {
		payload, _ := json.Marshal(item)
		rows[i] = models.CachedContent{
			ID:       uuid.New(),
			City:     city,
			Kind:     kind,
			Title:    item.Title,
			Summary:  item.Summary,
			Severity: item.Severity,
			Payload:  datatypes.JSON(payload),
			Fallback: fallback,
		}
	}

	// One transaction so a failure mid-batch cannot leave a partial refill.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	}); err != nil {
		return nil, storageErr("persist cached content", err)
	}

	return &dto.ContentFeedResponse{
		City:   city,
		Kind:   kind,
		Source: dto.ContentSourceProvider,
		Items:  mapContentItems(rows),
	}, nil
}

func buildContentPrompt(city, kind string) string {
	if kind == models.ContentKindBriefing {
		return fmt.Sprintf(`Provide a pollution briefing for the city of %s.
Return a JSON array of up to %d objects with fields:
- title: short headline
- summary: 2-3 sentences on current air/water/waste pollution conditions
- severity: one of [low, medium, high, critical]
Return ONLY valid JSON.`, city, maxContentItems)
	}
	return fmt.Sprintf(`Provide recent environment and waste-management news for %s.
Return a JSON array of up to %d objects with fields:
- title: short headline
- summary: 2-3 sentences
- severity: one of [low, medium, high, critical]
Return ONLY valid JSON.`, city, maxContentItems)
}

func mapContentItems(rows []models.CachedContent) []dto.ContentItem {
	items := make([]dto.ContentItem, len(rows))
	for i, row := range rows {
		items[i] = dto.ContentItem{
			ID:        row.ID,
			Title:     row.Title,
			Summary:   row.Summary,
			Severity:  row.Severity,
			Fallback:  row.Fallback,
			CreatedAt: row.CreatedAt,
		}
	}
	return items
}
