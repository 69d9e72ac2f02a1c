package services

import (
	"testing"
)

func TestCityStatsSingleReport(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportService(db)
	svc := NewAnalyticsService(db)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")

	if _, err := reports.Create(owner.ID, &CreateReportInput{
		Title: "Plastic dump", Description: "by the river", Category: "plastic", Severity: "high",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stats, err := svc.CityStats("Pune")
	if err != nil {
		t.Fatalf("CityStats failed: %v", err)
	}
	if stats.TotalReports != 1 {
		t.Errorf("expected 1 total report, got %d", stats.TotalReports)
	}
	if stats.ActiveUsers != 1 {
		t.Errorf("expected 1 active user, got %d", stats.ActiveUsers)
	}
	if stats.PerCategoryCounts["plastic"] != 1 {
		t.Errorf("expected plastic count 1, got %d", stats.PerCategoryCounts["plastic"])
	}
	if stats.HighSeverityCount != 1 {
		t.Errorf("expected high severity count 1, got %d", stats.HighSeverityCount)
	}
}

func TestCityStatsScoping(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportService(db)
	svc := NewAnalyticsService(db)
	asha := createTestUser(t, db, "asha", "Pune", "Maharashtra")
	bela := createTestUser(t, db, "bela", "Pune", "Maharashtra")
	mumbaikar := createTestUser(t, db, "chitra", "Mumbai", "Maharashtra")

	if _, err := reports.Create(asha.ID, &CreateReportInput{Title: "a", Description: "d", Category: "plastic", Severity: "critical"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := reports.Create(asha.ID, &CreateReportInput{Title: "b", Description: "d", Category: "organic", Severity: "low"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := reports.Create(bela.ID, &CreateReportInput{Title: "c", Description: "d", Category: "plastic", Severity: "high"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := reports.Create(mumbaikar.ID, &CreateReportInput{Title: "x", Description: "d", Category: "medical", Severity: "critical"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stats, err := svc.CityStats("Pune")
	if err != nil {
		t.Fatalf("CityStats failed: %v", err)
	}
	if stats.TotalReports != 3 {
		t.Errorf("expected 3 Pune reports, got %d", stats.TotalReports)
	}
	if stats.ActiveUsers != 2 {
		t.Errorf("expected 2 active users, got %d", stats.ActiveUsers)
	}
	if stats.PerCategoryCounts["plastic"] != 2 || stats.PerCategoryCounts["organic"] != 1 {
		t.Errorf("unexpected category counts: %v", stats.PerCategoryCounts)
	}
	if _, ok := stats.PerCategoryCounts["medical"]; ok {
		t.Error("Mumbai report leaked into Pune category counts")
	}
	if stats.HighSeverityCount != 2 {
		t.Errorf("expected high severity count 2 (high + critical), got %d", stats.HighSeverityCount)
	}
}

func TestLeaderboardOrderingAndScope(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportService(db)
	engagement := NewEngagementService(db)
	svc := NewAnalyticsService(db)

	asha := createTestUser(t, db, "asha", "Pune", "Maharashtra")
	bela := createTestUser(t, db, "bela", "Pune", "Maharashtra")
	chitra := createTestUser(t, db, "chitra", "Pune", "Maharashtra")
	fan := createTestUser(t, db, "dev", "Mumbai", "Maharashtra")

	// asha: 2 Pune reports. bela: 2 Pune reports, more likes. chitra: none.
	a1, err := reports.Create(asha.ID, &CreateReportInput{Title: "a1", Description: "d", Category: "plastic"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := reports.Create(asha.ID, &CreateReportInput{Title: "a2", Description: "d", Category: "plastic"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b1, err := reports.Create(bela.ID, &CreateReportInput{Title: "b1", Description: "d", Category: "organic"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := reports.Create(bela.ID, &CreateReportInput{Title: "b2", Description: "d", Category: "organic"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// bela's report gets likes from two users, asha's from one.
	if _, err := engagement.ToggleLike(b1.ID, asha.ID); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if _, err := engagement.ToggleLike(b1.ID, fan.ID); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if _, err := engagement.ToggleLike(a1.ID, fan.ID); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}

	board, err := svc.Leaderboard("Pune", 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board.Entries) != 2 {
		t.Fatalf("expected 2 contributors, got %d", len(board.Entries))
	}

	// Equal contributions, so likes received break the tie in bela's favor.
	if board.Entries[0].UserID != bela.ID {
		t.Errorf("expected bela first, got %s", board.Entries[0].Name)
	}
	if board.Entries[0].ContributionCount != 2 || board.Entries[0].TotalLikesReceived != 2 {
		t.Errorf("unexpected top entry: %+v", board.Entries[0])
	}
	if board.Entries[1].UserID != asha.ID || board.Entries[1].TotalLikesReceived != 1 {
		t.Errorf("unexpected second entry: %+v", board.Entries[1])
	}

	// chitra authored nothing and must not appear.
	for _, entry := range board.Entries {
		if entry.UserID == chitra.ID {
			t.Error("non-contributor appeared on leaderboard")
		}
	}
}

func TestLeaderboardGlobalLikesLocalMembership(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportService(db)
	engagement := NewEngagementService(db)
	svc := NewAnalyticsService(db)

	asha := createTestUser(t, db, "asha", "Pune", "Maharashtra")
	fan := createTestUser(t, db, "dev", "Mumbai", "Maharashtra")

	if _, err := reports.Create(asha.ID, &CreateReportInput{Title: "home", Description: "d", Category: "plastic"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// asha relocates and reports from Mumbai, then moves back. The Mumbai
	// report counts toward her like total but not her Pune contributions.
	if err := db.Model(asha).Update("city", "Mumbai").Error; err != nil {
		t.Fatalf("relocate failed: %v", err)
	}
	away, err := reports.Create(asha.ID, &CreateReportInput{Title: "away", Description: "d", Category: "organic"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := db.Model(asha).Update("city", "Pune").Error; err != nil {
		t.Fatalf("relocate failed: %v", err)
	}

	if _, err := engagement.ToggleLike(away.ID, fan.ID); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}

	board, err := svc.Leaderboard("Pune", 10)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(board.Entries))
	}
	entry := board.Entries[0]
	if entry.ContributionCount != 1 {
		t.Errorf("expected contribution count 1 (Pune only), got %d", entry.ContributionCount)
	}
	if entry.TotalLikesReceived != 1 {
		t.Errorf("expected global like total 1, got %d", entry.TotalLikesReceived)
	}
}

func TestLeaderboardTopN(t *testing.T) {
	db := newTestDB(t)
	reports := NewReportService(db)
	svc := NewAnalyticsService(db)

	for _, name := range []string{"asha", "bela", "chitra"} {
		u := createTestUser(t, db, name, "Pune", "Maharashtra")
		if _, err := reports.Create(u.ID, &CreateReportInput{Title: "t", Description: "d", Category: "other"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	board, err := svc.Leaderboard("Pune", 2)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board.Entries) != 2 {
		t.Errorf("expected topN to cap entries at 2, got %d", len(board.Entries))
	}
}
