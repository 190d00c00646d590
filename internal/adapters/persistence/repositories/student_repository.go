package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// studentRepository implements StudentRepository interface
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *studentRepository) WithTx(tx *gorm.DB) StudentRepository {
	return &studentRepository{db: tx}
}

// Create creates a new student lead
func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// GetByID gets a student with the referring affiliate and its sponsor loaded
func (r *studentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Preload("Affiliate.User").
		Preload("Affiliate.SuperAffiliate").
		Where("id = ?", id).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByEmailAndAffiliate checks the duplicate-lead invariant: the same
// affiliate may not hold two leads for one email.
func (r *studentRepository) ExistsByEmailAndAffiliate(ctx context.Context, email string, affiliateID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("email = ? AND affiliate_id = ?", strings.ToLower(strings.TrimSpace(email)), affiliateID).
		Count(&count).Error
	return count > 0, err
}

// List lists students with pagination, newest first
func (r *studentRepository) List(ctx context.Context, offset, limit int) ([]*models.Student, int64, error) {
	var students []*models.Student
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Preload("Affiliate.User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&students).Error
	if err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// ListByAffiliate lists the leads referred by one affiliate
func (r *studentRepository) ListByAffiliate(ctx context.Context, affiliateID uint) ([]*models.Student, error) {
	var students []*models.Student
	err := r.db.WithContext(ctx).
		Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").
		Find(&students).Error
	return students, err
}

// UpdateCourse sets the assigned course slug and display name
func (r *studentRepository) UpdateCourse(ctx context.Context, id uint, slug, name string) error {
	return r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"course_slug": slug,
			"course_name": name,
		}).Error
}

// CompareAndSwapStatus moves the lead status from `from` to `to` only if the
// stored status still equals `from`. The guard is what makes the admission
// credit fire exactly once under concurrent transitions: of two racing
// updates, only one sees RowsAffected > 0.
func (r *studentRepository) CompareAndSwapStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ? AND lead_status = ?", id, from).
		Update("lead_status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkAdmitted stamps admitted_at on first admission. The IS NULL guard
// makes the stamp a one-time claim: resetting the status and re-admitting
// later finds the stamp already set and must not credit again.
func (r *studentRepository) MarkAdmitted(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ? AND admitted_at IS NULL", id).
		Update("admitted_at", time.Now())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountUntouchedOlderThan counts leads still untouched after the given number of days
func (r *studentRepository) CountUntouchedOlderThan(ctx context.Context, days int) (int64, error) {
	var count int64
	cutoff := time.Now().AddDate(0, 0, -days)
	err := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("lead_status = ? AND created_at < ?", "untouched", cutoff).
		Count(&count).Error
	return count, err
}
