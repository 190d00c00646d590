package repositories

import (
	"context"
	"strings"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// superAffiliateRepository implements SuperAffiliateRepository interface
type superAffiliateRepository struct {
	db *gorm.DB
}

// NewSuperAffiliateRepository creates a new super-affiliate repository
func NewSuperAffiliateRepository(db *gorm.DB) SuperAffiliateRepository {
	return &superAffiliateRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *superAffiliateRepository) WithTx(tx *gorm.DB) SuperAffiliateRepository {
	return &superAffiliateRepository{db: tx}
}

// Create creates a new super-affiliate profile
func (r *superAffiliateRepository) Create(ctx context.Context, super *models.SuperAffiliate) error {
	return r.db.WithContext(ctx).Create(super).Error
}

// GetByID gets a super-affiliate by ID with user loaded
func (r *superAffiliateRepository) GetByID(ctx context.Context, id uint) (*models.SuperAffiliate, error) {
	var super models.SuperAffiliate
	err := r.db.WithContext(ctx).Preload("User").
		Where("id = ?", id).First(&super).Error
	if err != nil {
		return nil, err
	}
	return &super, nil
}

// GetByUserID gets a super-affiliate by owning user ID
func (r *superAffiliateRepository) GetByUserID(ctx context.Context, userID uint) (*models.SuperAffiliate, error) {
	var super models.SuperAffiliate
	err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).First(&super).Error
	if err != nil {
		return nil, err
	}
	return &super, nil
}

// GetByReferralCode gets a super-affiliate by referral code (stored lowercase)
func (r *superAffiliateRepository) GetByReferralCode(ctx context.Context, code string) (*models.SuperAffiliate, error) {
	var super models.SuperAffiliate
	err := r.db.WithContext(ctx).Preload("User").
		Where("referral_code = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&super).Error
	if err != nil {
		return nil, err
	}
	return &super, nil
}

// CodeInUse checks whether a referral code is already taken
func (r *superAffiliateRepository) CodeInUse(ctx context.Context, referralCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SuperAffiliate{}).
		Where("referral_code = ?", referralCode).Count(&count).Error
	return count > 0, err
}

// CreditTokens increments the token balance atomically
func (r *superAffiliateRepository) CreditTokens(ctx context.Context, id uint, amount int64) error {
	return r.db.WithContext(ctx).Model(&models.SuperAffiliate{}).
		Where("id = ?", id).
		Update("token_balance", gorm.Expr("token_balance + ?", amount)).Error
}

// DebitTokens decrements the token balance, guarded against overdraw
func (r *superAffiliateRepository) DebitTokens(ctx context.Context, id uint, amount int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.SuperAffiliate{}).
		Where("id = ? AND token_balance >= ?", id, amount).
		Update("token_balance", gorm.Expr("token_balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
