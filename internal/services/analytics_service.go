package services

import (
	"github.com/wastewatch/wastewatch-backend/internal/database"
	"github.com/wastewatch/wastewatch-backend/internal/dto"
	"github.com/wastewatch/wastewatch-backend/internal/models"
	"gorm.io/gorm"
)

const defaultLeaderboardSize = 10

// AnalyticsService derives city-level aggregates from the report and
// engagement tables at read time. Nothing is materialized, so results always
// reflect the latest committed writes visible to the query.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// CityStats aggregates report counts for one city.
func (s *AnalyticsService) CityStats(city string) (*dto.CityStatsResponse, error) {
	stats := &dto.CityStatsResponse{
		City:              city,
		PerCategoryCounts: make(map[string]int64),
	}

	base := func() *gorm.DB {
		return s.db.Model(&models.Report{}).Scopes(database.ReportsInCity(city))
	}

	if err := base().Count(&stats.TotalReports).Error; err != nil {
		return nil, storageErr("count city reports", err)
	}

	if err := base().Distinct("user_id").Count(&stats.ActiveUsers).Error; err != nil {
		return nil, storageErr("count active users", err)
	}

	var categoryRows []struct {
		Category string
		Count    int64
	}
	if err := base().Select("category, COUNT(*) AS count").Group("category").Scan(&categoryRows).Error; err != nil {
		return nil, storageErr("count per category", err)
	}
	for _, row := range categoryRows {
		stats.PerCategoryCounts[row.Category] = row.Count
	}

	err := base().
		Where("severity IN ?", []string{models.SeverityHigh, models.SeverityCritical}).
		Count(&stats.HighSeverityCount).Error
	if err != nil {
		return nil, storageErr("count high severity", err)
	}

	return stats, nil
}

// Leaderboard ranks a city's residents by reports authored in that city,
// ties broken by likes received. Like totals deliberately span all of a
// user's reports regardless of city: the city scopes membership and local
// activity, the like total is a global reputation signal.
func (s *AnalyticsService) Leaderboard(city string, topN int) (*dto.LeaderboardResponse, error) {
	if topN <= 0 {
		topN = defaultLeaderboardSize
	}
	if topN > maxPageSize {
		topN = maxPageSize
	}

	var entries []dto.LeaderboardEntry
	query := `
		SELECT user_id, name, contribution_count, total_likes_received FROM (
			SELECT u.id AS user_id, u.name,
				(SELECT COUNT(*) FROM reports r
					WHERE r.user_id = u.id AND r.city = ?) AS contribution_count,
				(SELECT COUNT(*) FROM likes l
					JOIN reports lr ON lr.id = l.report_id
					WHERE lr.user_id = u.id) AS total_likes_received
			FROM users u
			WHERE u.city = ?
		) ranked
		WHERE contribution_count > 0
		ORDER BY contribution_count DESC, total_likes_received DESC, user_id
		LIMIT ?
	`
	if err := s.db.Raw(query, city, city, topN).Scan(&entries).Error; err != nil {
		return nil, storageErr("leaderboard", err)
	}

	if entries == nil {
		entries = []dto.LeaderboardEntry{}
	}
	return &dto.LeaderboardResponse{City: city, Entries: entries}, nil
}
