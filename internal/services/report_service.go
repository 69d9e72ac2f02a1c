package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wastewatch/wastewatch-backend/internal/database"
	"github.com/wastewatch/wastewatch-backend/internal/dto"
	"github.com/wastewatch/wastewatch-backend/internal/models"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ReportService is the durable record of incident reports.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type CreateReportInput struct {
	Title       string
	Description string
	Category    string
	Severity    string
	ImageURL    string
}

// Create persists a new report owned by ownerID. City and state are copied
// from the owner's profile at call time and frozen on the report.
func (s *ReportService) Create(ownerID uuid.UUID, in *CreateReportInput) (*dto.ReportResponse, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)

	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}

	severity := in.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}
	if !models.ValidSeverity(severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrValidation, severity)
	}

	var owner models.User
	if err := s.db.First(&owner, "id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, storageErr("load report owner", err)
	}

	report := models.Report{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Title:       title,
		Description: description,
		Category:    category,
		Severity:    severity,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		State:       owner.State,
		City:        owner.City,
		Status:      models.StatusOpen,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, storageErr("create report", err)
	}

	return mapReportToResponse(&report, owner.Name, 0, 0), nil
}

// reportRow is the joined shape list and detail queries scan into.
type reportRow struct {
	models.Report
	AuthorName   string
	LikeCount    int64
	CommentCount int64
}

const reportSelect = `reports.*, users.name AS author_name,
	(SELECT COUNT(*) FROM likes WHERE likes.report_id = reports.id) AS like_count,
	(SELECT COUNT(*) FROM comments WHERE comments.report_id = reports.id) AS comment_count`

// ListByCity returns one page of a city's reports, newest first, together
// with the total count for that city. Limit and offset are clamped.
func (s *ReportService) ListByCity(city string, limit, offset int) (*dto.ReportListResponse, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&models.Report{}).Scopes(database.ReportsInCity(city)).Count(&total).Error; err != nil {
		return nil, storageErr("count reports", err)
	}

	var rows []reportRow
	err := s.db.Model(&models.Report{}).
		Select(reportSelect).
		Joins("JOIN users ON users.id = reports.user_id").
		Scopes(database.ReportsInCity(city)).
		Order("reports.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("list reports", err)
	}

	resp := &dto.ReportListResponse{
		Reports: make([]dto.ReportResponse, len(rows)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for i, r := range rows {
		resp.Reports[i] = *mapReportToResponse(&r.Report, r.AuthorName, r.LikeCount, r.CommentCount)
	}
	return resp, nil
}

// Get returns a single report with its engagement counts.
func (s *ReportService) Get(id uuid.UUID) (*dto.ReportResponse, error) {
	var row reportRow
	err := s.db.Model(&models.Report{}).
		Select(reportSelect).
		Joins("JOIN users ON users.id = reports.user_id").
		Where("reports.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report", ErrNotFound)
		}
		return nil, storageErr("get report", err)
	}
	return mapReportToResponse(&row.Report, row.AuthorName, row.LikeCount, row.CommentCount), nil
}

// UpdateStatus transitions a report's status. Who may call this is decided
// at the route layer; the store only validates the target status.
func (s *ReportService) UpdateStatus(id uuid.UUID, status string) (*dto.ReportResponse, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	result := s.db.Model(&models.Report{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, storageErr("update report status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: report", ErrNotFound)
	}

	return s.Get(id)
}

func mapReportToResponse(r *models.Report, authorName string, likes, comments int64) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		AuthorName:   authorName,
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		Severity:     r.Severity,
		ImageURL:     r.ImageURL,
		State:        r.State,
		City:         r.City,
		Status:       r.Status,
		LikeCount:    likes,
		CommentCount: comments,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
