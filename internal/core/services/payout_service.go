package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/config"
	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Payout errors
var (
	ErrInsufficientBalance  = errors.New("insufficient token balance")
	ErrPendingPayoutExists  = errors.New("a pending payout request already exists")
	ErrPayoutNotPending     = errors.New("payout request is not pending")
	ErrInvalidPayoutAmount  = errors.New("payout amount must be a positive multiple of the payout unit")
	ErrInvalidPayoutAccount = errors.New("payout reference is invalid")
)

// PayoutService handles payout requests and counsellor decisions
type PayoutService struct {
	db         *gorm.DB
	payoutRepo repositories.PayoutRequestRepository
	affRepo    repositories.AffiliateRepository
	superRepo  repositories.SuperAffiliateRepository
	cfg        *config.Config
}

// NewPayoutService creates a new payout service
func NewPayoutService(
	db *gorm.DB,
	payoutRepo repositories.PayoutRequestRepository,
	affRepo repositories.AffiliateRepository,
	superRepo repositories.SuperAffiliateRepository,
	cfg *config.Config,
) *PayoutService {
	return &PayoutService{
		db:         db,
		payoutRepo: payoutRepo,
		affRepo:    affRepo,
		superRepo:  superRepo,
		cfg:        cfg,
	}
}

// RequestPayoutInput represents payout request input
type RequestPayoutInput struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`

	// PayoutReference is either an absolute http(s) URL or a free-text
	// UPI handle the counsellor pays against.
	PayoutReference string `json:"payout_reference" validate:"required"`
}

// validateReference checks the payout destination. Anything starting with
// http:// or https:// must parse as an absolute URL; anything else is
// accepted as a UPI handle.
func validateReference(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" || len(ref) > 255 {
		return ErrInvalidPayoutAccount
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		u, err := url.Parse(ref)
		if err != nil || u.Host == "" {
			return ErrInvalidPayoutAccount
		}
	}
	return nil
}

// RequestPayout files a withdrawal claim for the calling affiliator or
// super-affiliator. At most one pending request per account; the amount
// must be covered by the balance and be a multiple of the payout unit.
func (s *PayoutService) RequestPayout(ctx context.Context, userID uint, role domain.Role, input *RequestPayoutInput) (*models.PayoutRequestResponse, error) {
	unit := s.cfg.Payout.Unit
	if input.Amount < unit || input.Amount%unit != 0 {
		return nil, ErrInvalidPayoutAmount
	}
	if err := validateReference(input.PayoutReference); err != nil {
		return nil, err
	}
	reference := strings.TrimSpace(input.PayoutReference)

	var payout *models.PayoutRequest

	switch role {
	case domain.RoleAffiliator:
		affiliate, err := s.affRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		if affiliate.TokenBalance < input.Amount {
			return nil, ErrInsufficientBalance
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			repo := s.payoutRepo.WithTx(tx)
			pending, err := repo.HasPendingForAffiliate(ctx, affiliate.ID)
			if err != nil {
				return err
			}
			if pending {
				return ErrPendingPayoutExists
			}
			payout = &models.PayoutRequest{
				AffiliateID:     &affiliate.ID,
				Amount:          input.Amount,
				Status:          string(domain.PayoutPending),
				PayoutReference: reference,
			}
			return repo.Create(ctx, payout)
		})
		if err != nil {
			return nil, err
		}
		payout.Affiliate = affiliate

	case domain.RoleSuperAffiliator:
		super, err := s.superRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		if super.TokenBalance < input.Amount {
			return nil, ErrInsufficientBalance
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			repo := s.payoutRepo.WithTx(tx)
			pending, err := repo.HasPendingForSuperAffiliate(ctx, super.ID)
			if err != nil {
				return err
			}
			if pending {
				return ErrPendingPayoutExists
			}
			payout = &models.PayoutRequest{
				SuperAffiliateID: &super.ID,
				Amount:           input.Amount,
				Status:           string(domain.PayoutPending),
				PayoutReference:  reference,
			}
			return repo.Create(ctx, payout)
		})
		if err != nil {
			return nil, err
		}
		payout.SuperAffiliate = super

	default:
		return nil, domain.ErrForbidden
	}

	metrics.PayoutsRequested.Inc()
	zap.L().Info("payout requested",
		zap.Uint("payout_id", payout.ID),
		zap.Int64("amount", payout.Amount),
		zap.String("role", string(role)))

	return payout.ToResponse(), nil
}

// ListPending lists pending payout requests for counsellors
func (s *PayoutService) ListPending(ctx context.Context) ([]*models.PayoutRequestResponse, error) {
	payouts, err := s.payoutRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*models.PayoutRequestResponse, 0, len(payouts))
	for _, p := range payouts {
		responses = append(responses, p.ToResponse())
	}
	return responses, nil
}

// ListForUser lists the calling account's payout requests, newest first
func (s *PayoutService) ListForUser(ctx context.Context, userID uint, role domain.Role) ([]*models.PayoutRequestResponse, error) {
	var payouts []*models.PayoutRequest
	var err error

	switch role {
	case domain.RoleAffiliator:
		affiliate, gerr := s.affRepo.GetByUserID(ctx, userID)
		if gerr != nil {
			if errors.Is(gerr, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, gerr
		}
		payouts, err = s.payoutRepo.ListByAffiliate(ctx, affiliate.ID)
	case domain.RoleSuperAffiliator:
		super, gerr := s.superRepo.GetByUserID(ctx, userID)
		if gerr != nil {
			if errors.Is(gerr, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, gerr
		}
		payouts, err = s.payoutRepo.ListBySuperAffiliate(ctx, super.ID)
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*models.PayoutRequestResponse, 0, len(payouts))
	for _, p := range payouts {
		responses = append(responses, p.ToResponse())
	}
	return responses, nil
}

// Approve debits the requester's balance and marks the request approved.
// The debit is guarded on sufficient funds and the status flip is a
// compare-and-swap from pending, both inside one transaction, so a
// request can neither be approved twice nor drive a balance negative.
func (s *PayoutService) Approve(ctx context.Context, payoutID uint) (*models.PayoutRequestResponse, error) {
	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if payout.Status != string(domain.PayoutPending) {
		return nil, ErrPayoutNotPending
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var debited bool
		var err error
		switch {
		case payout.AffiliateID != nil:
			debited, err = s.affRepo.WithTx(tx).DebitTokens(ctx, *payout.AffiliateID, payout.Amount)
		case payout.SuperAffiliateID != nil:
			debited, err = s.superRepo.WithTx(tx).DebitTokens(ctx, *payout.SuperAffiliateID, payout.Amount)
		default:
			return domain.ErrInternalServer
		}
		if err != nil {
			return err
		}
		if !debited {
			return ErrInsufficientBalance
		}

		swapped, err := s.payoutRepo.WithTx(tx).CompareAndSwapStatus(ctx, payout.ID, string(domain.PayoutPending), string(domain.PayoutApproved))
		if err != nil {
			return err
		}
		if !swapped {
			return ErrPayoutNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PayoutsProcessed.WithLabelValues("approved").Inc()
	zap.L().Info("payout approved",
		zap.Uint("payout_id", payout.ID),
		zap.Int64("amount", payout.Amount))

	updated, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

// Reject marks a pending request rejected without touching any balance
func (s *PayoutService) Reject(ctx context.Context, payoutID uint) (*models.PayoutRequestResponse, error) {
	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if payout.Status != string(domain.PayoutPending) {
		return nil, ErrPayoutNotPending
	}

	swapped, err := s.payoutRepo.CompareAndSwapStatus(ctx, payout.ID, string(domain.PayoutPending), string(domain.PayoutRejected))
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, ErrPayoutNotPending
	}

	metrics.PayoutsProcessed.WithLabelValues("rejected").Inc()
	zap.L().Info("payout rejected", zap.Uint("payout_id", payout.ID))

	updated, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}
