package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/wastewatch/wastewatch-backend/internal/models"
	"gorm.io/gorm"
)

func seedReport(t *testing.T, db *gorm.DB, ownerID uuid.UUID) uuid.UUID {
	t.Helper()
	report, err := NewReportService(db).Create(ownerID, &CreateReportInput{
		Title: "Industrial runoff", Description: "discoloured water", Category: "industrial",
	})
	if err != nil {
		t.Fatalf("seed report failed: %v", err)
	}
	return report.ID
}

func TestToggleLikeIsItsOwnInverse(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")
	liker := createTestUser(t, db, "bela", "Pune", "Maharashtra")
	reportID := seedReport(t, db, owner.ID)

	for round := 0; round < 3; round++ {
		liked, err := svc.ToggleLike(reportID, liker.ID)
		if err != nil {
			t.Fatalf("toggle on failed: %v", err)
		}
		if !liked {
			t.Fatalf("round %d: expected liked=true after odd toggle", round)
		}
		if count, _ := svc.LikeCount(reportID); count != 1 {
			t.Errorf("round %d: expected like count 1, got %d", round, count)
		}

		liked, err = svc.ToggleLike(reportID, liker.ID)
		if err != nil {
			t.Fatalf("toggle off failed: %v", err)
		}
		if liked {
			t.Fatalf("round %d: expected liked=false after even toggle", round)
		}
		if count, _ := svc.LikeCount(reportID); count != 0 {
			t.Errorf("round %d: expected like count 0, got %d", round, count)
		}
	}
}

func TestToggleLikeCountsDistinctUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")
	reportID := seedReport(t, db, owner.ID)

	for _, name := range []string{"bela", "chitra", "dev"} {
		u := createTestUser(t, db, name, "Pune", "Maharashtra")
		if _, err := svc.ToggleLike(reportID, u.ID); err != nil {
			t.Fatalf("toggle failed for %s: %v", name, err)
		}
	}

	count, err := svc.LikeCount(reportID)
	if err != nil {
		t.Fatalf("LikeCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 likes, got %d", count)
	}
}

func TestToggleLikeMissingReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	user := createTestUser(t, db, "asha", "Pune", "Maharashtra")

	if _, err := svc.ToggleLike(uuid.New(), user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLikeUniquenessEnforcedByStore(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")
	liker := createTestUser(t, db, "bela", "Pune", "Maharashtra")
	reportID := seedReport(t, db, owner.ID)

	first := models.Like{ID: uuid.New(), ReportID: reportID, UserID: liker.ID}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	// The composite unique index is the arbiter under concurrency; a
	// duplicate insert must come back as gorm.ErrDuplicatedKey so the
	// toggle can absorb it.
	dup := models.Like{ID: uuid.New(), ReportID: reportID, UserID: liker.ID}
	if err := db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}

	// And the toggle still resolves cleanly from this state.
	liked, err := NewEngagementService(db).ToggleLike(reportID, liker.ID)
	if err != nil {
		t.Fatalf("toggle after duplicate failed: %v", err)
	}
	if liked {
		t.Error("expected toggle to remove the existing like")
	}
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")
	commenter := createTestUser(t, db, "bela", "Pune", "Maharashtra")
	reportID := seedReport(t, db, owner.ID)

	if _, err := svc.AddComment(reportID, commenter.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank text, got %v", err)
	}
	if _, err := svc.AddComment(uuid.New(), commenter.ID, "hello"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing report, got %v", err)
	}

	comment, err := svc.AddComment(reportID, commenter.ID, "Reported to the ward office too")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if comment.AuthorName != "bela" {
		t.Errorf("expected author name bela, got %s", comment.AuthorName)
	}
}

func TestCommentsForCreationOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewEngagementService(db)
	owner := createTestUser(t, db, "asha", "Pune", "Maharashtra")
	commenter := createTestUser(t, db, "bela", "Pune", "Maharashtra")
	reportID := seedReport(t, db, owner.ID)

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := svc.AddComment(reportID, commenter.ID, text); err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
	}

	comments, err := svc.CommentsFor(reportID)
	if err != nil {
		t.Fatalf("CommentsFor failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	for i, text := range texts {
		if comments[i].Text != text {
			t.Errorf("position %d: expected %q, got %q", i, text, comments[i].Text)
		}
	}
}
