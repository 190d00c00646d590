package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/codes"

	"gorm.io/gorm"
)

func newAffiliateService(db *gorm.DB) *AffiliateService {
	return NewAffiliateService(
		db,
		repositories.NewUserRepository(db),
		repositories.NewAffiliateRepository(db),
		repositories.NewSuperAffiliateRepository(db),
	)
}

func TestRegisterAffiliator(t *testing.T) {
	ctx := context.Background()

	t.Run("creates profile with derived coupon code", func(t *testing.T) {
		db := newTestDB(t)
		svc := newAffiliateService(db)

		profile, err := svc.RegisterAffiliator(ctx, &RegisterInput{
			Name:     "Arjun Affiliator",
			Email:    "Arjun@Example.com",
			Password: "Password123!",
		})
		if err != nil {
			t.Fatalf("RegisterAffiliator error = %v", err)
		}

		if len(profile.ReferralCode) != codes.AffiliateCodeLength {
			t.Errorf("referral code length = %d, want %d", len(profile.ReferralCode), codes.AffiliateCodeLength)
		}
		if profile.CouponCode != strings.ToUpper(profile.ReferralCode) {
			t.Errorf("coupon %q is not the uppercase referral code %q", profile.CouponCode, profile.ReferralCode)
		}
		if profile.TokenBalance != 0 {
			t.Errorf("starting balance = %d, want 0", profile.TokenBalance)
		}
		if profile.Email != "arjun@example.com" {
			t.Errorf("email = %q, want normalized lowercase", profile.Email)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		db := newTestDB(t)
		svc := newAffiliateService(db)

		if _, err := svc.RegisterAffiliator(ctx, &RegisterInput{
			Name:     "First",
			Email:    "dup@example.com",
			Password: "Password123!",
		}); err != nil {
			t.Fatalf("first register error = %v", err)
		}

		_, err := svc.RegisterAffiliator(ctx, &RegisterInput{
			Name:     "Second",
			Email:    "dup@example.com",
			Password: "Password123!",
		})
		if !errors.Is(err, domain.ErrDuplicateEntry) {
			t.Fatalf("error = %v, want ErrDuplicateEntry", err)
		}
	})

	t.Run("links to sponsor by referral code", func(t *testing.T) {
		db := newTestDB(t)
		super := createSuperAffiliate(t, db, "super@example.com", "superhub", 0)
		svc := newAffiliateService(db)

		profile, err := svc.RegisterAffiliator(ctx, &RegisterInput{
			Name:        "Sponsored",
			Email:       "sponsored@example.com",
			Password:    "Password123!",
			SponsorCode: "SUPERHUB",
		})
		if err != nil {
			t.Fatalf("RegisterAffiliator error = %v", err)
		}
		if profile.SponsorCode != super.ReferralCode {
			t.Errorf("sponsor code = %q, want %q", profile.SponsorCode, super.ReferralCode)
		}
	})

	t.Run("rejects unknown sponsor code", func(t *testing.T) {
		db := newTestDB(t)
		svc := newAffiliateService(db)

		_, err := svc.RegisterAffiliator(ctx, &RegisterInput{
			Name:        "Orphan",
			Email:       "orphan@example.com",
			Password:    "Password123!",
			SponsorCode: "no-such-hub",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		db := newTestDB(t)
		svc := newAffiliateService(db)

		_, err := svc.RegisterAffiliator(ctx, &RegisterInput{
			Name:     "Weak",
			Email:    "weak@example.com",
			Password: "short",
		})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestRegisterSuperAffiliator(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newAffiliateService(db)

	profile, err := svc.RegisterSuperAffiliator(ctx, &RegisterInput{
		Name:     "Manjeet Super",
		Email:    "super@example.com",
		Password: "Password123!",
	})
	if err != nil {
		t.Fatalf("RegisterSuperAffiliator error = %v", err)
	}
	if len(profile.ReferralCode) != codes.SuperCodeLength {
		t.Errorf("referral code length = %d, want %d", len(profile.ReferralCode), codes.SuperCodeLength)
	}
	if profile.TokenBalance != 0 {
		t.Errorf("starting balance = %d, want 0", profile.TokenBalance)
	}
}
