package repositories

import (
	"context"
	"time"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// payoutRequestRepository implements PayoutRequestRepository interface
type payoutRequestRepository struct {
	db *gorm.DB
}

// NewPayoutRequestRepository creates a new payout request repository
func NewPayoutRequestRepository(db *gorm.DB) PayoutRequestRepository {
	return &payoutRequestRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *payoutRequestRepository) WithTx(tx *gorm.DB) PayoutRequestRepository {
	return &payoutRequestRepository{db: tx}
}

// Create creates a new payout request
func (r *payoutRequestRepository) Create(ctx context.Context, payout *models.PayoutRequest) error {
	return r.db.WithContext(ctx).Create(payout).Error
}

// GetByID gets a payout request with requester profiles loaded
func (r *payoutRequestRepository) GetByID(ctx context.Context, id uint) (*models.PayoutRequest, error) {
	var payout models.PayoutRequest
	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Preload("Affiliate.User").
		Preload("SuperAffiliate").
		Preload("SuperAffiliate.User").
		Where("id = ?", id).First(&payout).Error
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

// HasPendingForAffiliate checks the one-pending-request invariant for an affiliate
func (r *payoutRequestRepository) HasPendingForAffiliate(ctx context.Context, affiliateID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PayoutRequest{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, "pending").
		Count(&count).Error
	return count > 0, err
}

// HasPendingForSuperAffiliate checks the one-pending-request invariant for a super-affiliate
func (r *payoutRequestRepository) HasPendingForSuperAffiliate(ctx context.Context, superID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PayoutRequest{}).
		Where("super_affiliate_id = ? AND status = ?", superID, "pending").
		Count(&count).Error
	return count > 0, err
}

// ListPending lists pending payout requests for the counsellor queue, newest first
func (r *payoutRequestRepository) ListPending(ctx context.Context) ([]*models.PayoutRequest, error) {
	var payouts []*models.PayoutRequest
	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Preload("Affiliate.User").
		Preload("SuperAffiliate").
		Preload("SuperAffiliate.User").
		Where("status = ?", "pending").
		Order("created_at DESC").
		Find(&payouts).Error
	return payouts, err
}

// ListByAffiliate lists all payout requests filed by one affiliate
func (r *payoutRequestRepository) ListByAffiliate(ctx context.Context, affiliateID uint) ([]*models.PayoutRequest, error) {
	var payouts []*models.PayoutRequest
	err := r.db.WithContext(ctx).
		Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").
		Find(&payouts).Error
	return payouts, err
}

// ListBySuperAffiliate lists all payout requests filed by one super-affiliate
func (r *payoutRequestRepository) ListBySuperAffiliate(ctx context.Context, superID uint) ([]*models.PayoutRequest, error) {
	var payouts []*models.PayoutRequest
	err := r.db.WithContext(ctx).
		Where("super_affiliate_id = ?", superID).
		Order("created_at DESC").
		Find(&payouts).Error
	return payouts, err
}

// CompareAndSwapStatus terminalizes a request only if it is still in `from`.
// Terminal rows stay immutable because nothing swaps away from a terminal
// status. Also stamps processed_at on success.
func (r *payoutRequestRepository) CompareAndSwapStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.PayoutRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":       to,
			"processed_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
