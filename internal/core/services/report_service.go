package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/pagination"

	"go.uber.org/zap"
)

// Report errors
var (
	ErrDescriptionLength  = errors.New("description must be between 20 and 1500 characters")
	ErrLeadCountRange     = errors.New("lead count must be between 1 and 500")
	ErrDaysUntouchedRange = errors.New("days untouched must be between 1 and 365")
)

// ReportService handles affiliate issue reports
type ReportService struct {
	reportRepo repositories.IssueReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repositories.IssueReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// FileReportInput represents issue report input
type FileReportInput struct {
	Topic       string `json:"topic" validate:"required"`
	Description string `json:"description" validate:"required,min=20,max=1500"`

	// Supporting numbers for the untouched-leads topic
	LeadCount     *int `json:"lead_count"`
	DaysUntouched *int `json:"days_untouched"`
}

// FileReport records an issue report for the calling user
func (s *ReportService) FileReport(ctx context.Context, userID uint, role domain.Role, input *FileReportInput) (*models.IssueReport, error) {
	topic, err := domain.ParseReportTopic(input.Topic)
	if err != nil {
		return nil, domain.ErrInvalidReportTopic
	}

	description := strings.TrimSpace(input.Description)
	if len(description) < 20 || len(description) > 1500 {
		return nil, ErrDescriptionLength
	}
	if input.LeadCount != nil && (*input.LeadCount < 1 || *input.LeadCount > 500) {
		return nil, ErrLeadCountRange
	}
	if input.DaysUntouched != nil && (*input.DaysUntouched < 1 || *input.DaysUntouched > 365) {
		return nil, ErrDaysUntouchedRange
	}

	report := &models.IssueReport{
		UserID:        userID,
		Role:          string(role),
		Topic:         string(topic),
		Description:   description,
		LeadCount:     input.LeadCount,
		DaysUntouched: input.DaysUntouched,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	zap.L().Info("issue report filed",
		zap.Uint("report_id", report.ID),
		zap.String("topic", report.Topic))

	return report, nil
}

// ListReports lists filed reports for counsellors, newest first
func (s *ReportService) ListReports(ctx context.Context, params *pagination.Params) (*pagination.Response, error) {
	reports, total, err := s.reportRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}
	return pagination.NewResponse(reports, params, total), nil
}
