package repositories

import (
	"context"
	"strings"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// affiliateRepository implements AffiliateRepository interface
type affiliateRepository struct {
	db *gorm.DB
}

// NewAffiliateRepository creates a new affiliate repository
func NewAffiliateRepository(db *gorm.DB) AffiliateRepository {
	return &affiliateRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *affiliateRepository) WithTx(tx *gorm.DB) AffiliateRepository {
	return &affiliateRepository{db: tx}
}

// Create creates a new affiliate profile
func (r *affiliateRepository) Create(ctx context.Context, affiliate *models.Affiliate) error {
	return r.db.WithContext(ctx).Create(affiliate).Error
}

// GetByID gets an affiliate by ID with user and sponsor loaded
func (r *affiliateRepository) GetByID(ctx context.Context, id uint) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	err := r.db.WithContext(ctx).
		Preload("User").Preload("SuperAffiliate").
		Where("id = ?", id).First(&affiliate).Error
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}

// GetByUserID gets an affiliate by owning user ID
func (r *affiliateRepository) GetByUserID(ctx context.Context, userID uint) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	err := r.db.WithContext(ctx).
		Preload("User").Preload("SuperAffiliate").
		Where("user_id = ?", userID).First(&affiliate).Error
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}

// GetByReferralCode gets an affiliate by referral code.
// Codes are stored lowercase, so lowering the input gives a
// case-insensitive exact match.
func (r *affiliateRepository) GetByReferralCode(ctx context.Context, code string) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	err := r.db.WithContext(ctx).
		Preload("User").Preload("SuperAffiliate").
		Where("referral_code = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&affiliate).Error
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}

// CodeInUse checks whether a coupon or referral code is already taken
func (r *affiliateRepository) CodeInUse(ctx context.Context, couponCode, referralCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Affiliate{}).
		Where("coupon_code = ? OR referral_code = ?", couponCode, referralCode).
		Count(&count).Error
	return count > 0, err
}

// CreditTokens increments the token balance atomically
func (r *affiliateRepository) CreditTokens(ctx context.Context, id uint, amount int64) error {
	return r.db.WithContext(ctx).Model(&models.Affiliate{}).
		Where("id = ?", id).
		Update("token_balance", gorm.Expr("token_balance + ?", amount)).Error
}

// DebitTokens decrements the token balance. The WHERE guard makes the
// debit conditional on sufficient funds, so concurrent approvals cannot
// drive the balance negative. Returns false when the guard rejected it.
func (r *affiliateRepository) DebitTokens(ctx context.Context, id uint, amount int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Affiliate{}).
		Where("id = ? AND token_balance >= ?", id, amount).
		Update("token_balance", gorm.Expr("token_balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
