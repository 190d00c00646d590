package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/codes"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AffiliateService handles affiliate account registration and profiles
type AffiliateService struct {
	db        *gorm.DB
	userRepo  repositories.UserRepository
	affRepo   repositories.AffiliateRepository
	superRepo repositories.SuperAffiliateRepository
}

// NewAffiliateService creates a new affiliate service
func NewAffiliateService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	affRepo repositories.AffiliateRepository,
	superRepo repositories.SuperAffiliateRepository,
) *AffiliateService {
	return &AffiliateService{
		db:        db,
		userRepo:  userRepo,
		affRepo:   affRepo,
		superRepo: superRepo,
	}
}

// RegisterInput represents affiliate registration input
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`

	// SponsorCode is an optional super-affiliator referral code that
	// links the new affiliator to a sponsor.
	SponsorCode string `json:"sponsor_code"`
}

// RegisterAffiliator creates an affiliator user and its ledger profile.
// A fresh referral code is generated; the coupon code is its uppercase
// form. The user and profile are created in one transaction.
func (s *AffiliateService) RegisterAffiliator(ctx context.Context, input *RegisterInput) (*models.AffiliateResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := password.ValidatePassword(input.Password); err != nil {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	// Resolve optional sponsor before opening the transaction
	var sponsor *models.SuperAffiliate
	var sponsorID *uint
	if code := strings.ToLower(strings.TrimSpace(input.SponsorCode)); code != "" {
		sponsor, err = s.superRepo.GetByReferralCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		sponsorID = &sponsor.ID
	}

	referralCode, err := codes.Generate(codes.AffiliateCodeLength, func(c string) (bool, error) {
		return s.affRepo.CodeInUse(ctx, strings.ToUpper(c), c)
	})
	if err != nil {
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var affiliate *models.Affiliate
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := &models.User{
			Name:     name,
			Email:    email,
			Password: hashed,
			Role:     string(domain.RoleAffiliator),
		}
		if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}

		affiliate = &models.Affiliate{
			UserID:           user.ID,
			CouponCode:       strings.ToUpper(referralCode),
			ReferralCode:     referralCode,
			SuperAffiliateID: sponsorID,
		}
		if err := s.affRepo.WithTx(tx).Create(ctx, affiliate); err != nil {
			return err
		}
		affiliate.User = user
		affiliate.SuperAffiliate = sponsor
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("affiliator registered",
		zap.Uint("affiliate_id", affiliate.ID),
		zap.String("referral_code", affiliate.ReferralCode))

	return affiliate.ToResponse(), nil
}

// RegisterSuperAffiliator creates a super-affiliator user and profile
func (s *AffiliateService) RegisterSuperAffiliator(ctx context.Context, input *RegisterInput) (*models.SuperAffiliateResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := password.ValidatePassword(input.Password); err != nil {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	referralCode, err := codes.Generate(codes.SuperCodeLength, func(c string) (bool, error) {
		return s.superRepo.CodeInUse(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var super *models.SuperAffiliate
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := &models.User{
			Name:     name,
			Email:    email,
			Password: hashed,
			Role:     string(domain.RoleSuperAffiliator),
		}
		if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}

		super = &models.SuperAffiliate{
			UserID:       user.ID,
			ReferralCode: referralCode,
		}
		if err := s.superRepo.WithTx(tx).Create(ctx, super); err != nil {
			return err
		}
		super.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("super-affiliator registered",
		zap.Uint("super_affiliate_id", super.ID),
		zap.String("referral_code", super.ReferralCode))

	return super.ToResponse(), nil
}

// GetAffiliateProfile returns the ledger profile for an affiliator user
func (s *AffiliateService) GetAffiliateProfile(ctx context.Context, userID uint) (*models.AffiliateResponse, error) {
	affiliate, err := s.affRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return affiliate.ToResponse(), nil
}

// GetSuperAffiliateProfile returns the ledger profile for a super-affiliator user
func (s *AffiliateService) GetSuperAffiliateProfile(ctx context.Context, userID uint) (*models.SuperAffiliateResponse, error) {
	super, err := s.superRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return super.ToResponse(), nil
}
