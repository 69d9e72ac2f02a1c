package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wastewatch/wastewatch-backend/internal/models"
)

func TestCreateReportValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")

	cases := []struct {
		name  string
		input CreateReportInput
	}{
		{"missing title", CreateReportInput{Description: "overflowing bins", Category: "plastic"}},
		{"missing description", CreateReportInput{Title: "Overflowing bins", Category: "plastic"}},
		{"missing category", CreateReportInput{Title: "Overflowing bins", Description: "near the market"}},
		{"unknown category", CreateReportInput{Title: "Overflowing bins", Description: "near the market", Category: "nuclear"}},
		{"unknown severity", CreateReportInput{Title: "Overflowing bins", Description: "near the market", Category: "plastic", Severity: "apocalyptic"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(owner.ID, &tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateReportDefaultsAndSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")

	report, err := svc.Create(owner.ID, &CreateReportInput{
		Title:       "Plastic dump near river",
		Description: "Large pile of plastic waste on the east bank",
		Category:    "plastic",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if report.Severity != models.SeverityMedium {
		t.Errorf("expected default severity medium, got %s", report.Severity)
	}
	if report.Status != models.StatusOpen {
		t.Errorf("expected default status open, got %s", report.Status)
	}
	if report.City != "Pune" || report.State != "Maharashtra" {
		t.Errorf("expected city/state copied from owner, got %s/%s", report.City, report.State)
	}

	// Relocating the owner must not touch the report's frozen snapshot.
	if err := db.Model(&models.User{}).Where("id = ?", owner.ID).
		Updates(map[string]interface{}{"city": "Mumbai", "state": "Maharashtra"}).Error; err != nil {
		t.Fatalf("failed to relocate owner: %v", err)
	}

	got, err := svc.Get(report.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.City != "Pune" {
		t.Errorf("report city changed after owner relocation: got %s", got.City)
	}
}

func TestCreateReportOwnerMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	_, err := svc.Create(uuid.New(), &CreateReportInput{
		Title:       "Ghost report",
		Description: "no such owner",
		Category:    "other",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListByCityPaginationAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")
	outsider := createTestUser(t, db, "bela", "Mumbai", "Maharashtra")

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := svc.Create(owner.ID, &CreateReportInput{
			Title: title, Description: "d", Category: "organic",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	if _, err := svc.Create(outsider.ID, &CreateReportInput{
		Title: "elsewhere", Description: "d", Category: "organic",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	page, err := svc.ListByCity("Pune", 2, 0)
	if err != nil {
		t.Fatalf("ListByCity failed: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("expected total 3, got %d", page.Total)
	}
	if len(page.Reports) != 2 {
		t.Fatalf("expected 2 reports on page, got %d", len(page.Reports))
	}
	if page.Reports[0].Title != "third" || page.Reports[1].Title != "second" {
		t.Errorf("expected newest-first order, got %s, %s", page.Reports[0].Title, page.Reports[1].Title)
	}
	if page.Reports[0].AuthorName != "asha" {
		t.Errorf("expected author name asha, got %s", page.Reports[0].AuthorName)
	}

	rest, err := svc.ListByCity("Pune", 2, 2)
	if err != nil {
		t.Fatalf("ListByCity failed: %v", err)
	}
	if len(rest.Reports) != 1 || rest.Reports[0].Title != "first" {
		t.Errorf("expected last page to hold the oldest report")
	}

	// Negative paging values are clamped, not rejected.
	clamped, err := svc.ListByCity("Pune", -5, -10)
	if err != nil {
		t.Fatalf("ListByCity with negative paging failed: %v", err)
	}
	if clamped.Limit <= 0 || clamped.Offset != 0 {
		t.Errorf("expected clamped paging, got limit=%d offset=%d", clamped.Limit, clamped.Offset)
	}
}

func TestGetReportNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	if _, err := svc.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")

	report, err := svc.Create(owner.ID, &CreateReportInput{
		Title: "Burning e-waste", Description: "smoke daily", Category: "electronic", Severity: "high",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.UpdateStatus(report.ID, models.StatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("expected status in_progress, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(report.ID, "archived"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown status, got %v", err)
	}
	if _, err := svc.UpdateStatus(uuid.New(), models.StatusResolved); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing report, got %v", err)
	}
}
