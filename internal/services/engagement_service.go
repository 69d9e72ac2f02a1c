package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wastewatch/wastewatch-backend/internal/dto"
	"github.com/wastewatch/wastewatch-backend/internal/models"
	"gorm.io/gorm"
)

// EngagementService owns likes and comments.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

// ToggleLike flips the like state for (reportID, userID) and reports the
// resulting state. The (report_id, user_id) unique index arbitrates races:
// a concurrent duplicate insert loses with gorm.ErrDuplicatedKey and is
// absorbed as "already liked", a concurrent double-unlike loses with zero
// rows affected and is absorbed as "already unliked". Callers never see the
// conflict.
func (s *EngagementService) ToggleLike(reportID, userID uuid.UUID) (bool, error) {
	if err := s.ensureReportExists(reportID); err != nil {
		return false, err
	}

	var existing models.Like
	err := s.db.Where("report_id = ? AND user_id = ?", reportID, userID).Take(&existing).Error
	switch {
	case err == nil:
		result := s.db.Delete(&models.Like{}, "id = ?", existing.ID)
		if result.Error != nil {
			return false, storageErr("remove like", result.Error)
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.Like{ID: uuid.New(), ReportID: reportID, UserID: userID}
		if err := s.db.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return true, nil
			}
			return false, storageErr("create like", err)
		}
		return true, nil
	default:
		return false, storageErr("lookup like", err)
	}
}

// LikeCount returns the number of distinct users currently liking the report.
func (s *EngagementService) LikeCount(reportID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Like{}).Where("report_id = ?", reportID).Count(&count).Error; err != nil {
		return 0, storageErr("count likes", err)
	}
	return count, nil
}

// AddComment appends a comment to a report.
func (s *EngagementService) AddComment(reportID, userID uuid.UUID, text string) (*dto.CommentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	if err := s.ensureReportExists(reportID); err != nil {
		return nil, err
	}

	var author models.User
	if err := s.db.First(&author, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, storageErr("load comment author", err)
	}

	comment := models.Comment{
		ID:       uuid.New(),
		ReportID: reportID,
		UserID:   userID,
		Text:     text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, storageErr("create comment", err)
	}

	return &dto.CommentResponse{
		ID:         comment.ID,
		ReportID:   comment.ReportID,
		UserID:     comment.UserID,
		AuthorName: author.Name,
		Text:       comment.Text,
		CreatedAt:  comment.CreatedAt,
	}, nil
}

// CommentsFor returns a report's comments in creation order.
func (s *EngagementService) CommentsFor(reportID uuid.UUID) ([]dto.CommentResponse, error) {
	if err := s.ensureReportExists(reportID); err != nil {
		return nil, err
	}

	var rows []struct {
		models.Comment
		AuthorName string
	}
	err := s.db.Model(&models.Comment{}).
		Select("comments.*, users.name AS author_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.report_id = ?", reportID).
		Order("comments.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("list comments", err)
	}

	comments := make([]dto.CommentResponse, len(rows))
	for i, r := range rows {
		comments[i] = dto.CommentResponse{
			ID:         r.Comment.ID,
			ReportID:   r.Comment.ReportID,
			UserID:     r.Comment.UserID,
			AuthorName: r.AuthorName,
			Text:       r.Comment.Text,
			CreatedAt:  r.Comment.CreatedAt,
		}
	}
	return comments, nil
}

func (s *EngagementService) ensureReportExists(reportID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Report{}).Where("id = ?", reportID).Count(&count).Error; err != nil {
		return storageErr("check report", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: report", ErrNotFound)
	}
	return nil
}
