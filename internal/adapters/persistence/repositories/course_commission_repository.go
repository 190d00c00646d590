package repositories

import (
	"context"
	"strings"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// courseCommissionRepository implements CourseCommissionRepository interface
type courseCommissionRepository struct {
	db *gorm.DB
}

// NewCourseCommissionRepository creates a new course commission repository
func NewCourseCommissionRepository(db *gorm.DB) CourseCommissionRepository {
	return &courseCommissionRepository{db: db}
}

// GetBySlug gets a catalog entry by slug, case-insensitively
func (r *courseCommissionRepository) GetBySlug(ctx context.Context, slug string) (*models.CourseCommission, error) {
	var commission models.CourseCommission
	err := r.db.WithContext(ctx).
		Where("LOWER(slug) = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&commission).Error
	if err != nil {
		return nil, err
	}
	return &commission, nil
}

// CategoryExists checks a category case-insensitively and returns the
// canonical spelling stored in the catalog.
func (r *courseCommissionRepository) CategoryExists(ctx context.Context, category string) (string, error) {
	var commission models.CourseCommission
	err := r.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		First(&commission).Error
	if err != nil {
		return "", err
	}
	return commission.Category, nil
}

// List lists the full catalog ordered by category then name
func (r *courseCommissionRepository) List(ctx context.Context) ([]*models.CourseCommission, error) {
	var commissions []*models.CourseCommission
	err := r.db.WithContext(ctx).
		Order("category ASC, name ASC").
		Find(&commissions).Error
	return commissions, err
}
