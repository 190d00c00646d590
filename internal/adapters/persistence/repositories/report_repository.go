package repositories

import (
	"context"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// issueReportRepository implements IssueReportRepository interface
type issueReportRepository struct {
	db *gorm.DB
}

// NewIssueReportRepository creates a new issue report repository
func NewIssueReportRepository(db *gorm.DB) IssueReportRepository {
	return &issueReportRepository{db: db}
}

// Create creates a new issue report
func (r *issueReportRepository) Create(ctx context.Context, report *models.IssueReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// List lists issue reports with pagination, newest first
func (r *issueReportRepository) List(ctx context.Context, offset, limit int) ([]*models.IssueReport, int64, error) {
	var reports []*models.IssueReport
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.IssueReport{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
