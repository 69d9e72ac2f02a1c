package dto

import "github.com/google/uuid"

type CityStatsResponse struct {
	City              string           `json:"city"`
	TotalReports      int64            `json:"total_reports"`
	ActiveUsers       int64            `json:"active_users"`
	PerCategoryCounts map[string]int64 `json:"per_category_counts"`
	HighSeverityCount int64            `json:"high_severity_count"`
}

type LeaderboardEntry struct {
	UserID             uuid.UUID `json:"user_id"`
	Name               string    `json:"name"`
	ContributionCount  int64     `json:"contribution_count"`
	TotalLikesReceived int64     `json:"total_likes_received"`
}

type LeaderboardResponse struct {
	City    string             `json:"city"`
	Entries []LeaderboardEntry `json:"entries"`
}
