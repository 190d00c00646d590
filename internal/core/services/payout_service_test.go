package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
)

func TestRequestPayout(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a covered multiple of the unit", func(t *testing.T) {
		db := newTestDB(t)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 8000, nil)
		svc := newPayoutService(db)

		payout, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "arjun@upi",
		})
		if err != nil {
			t.Fatalf("RequestPayout error = %v", err)
		}
		if payout.Status != string(domain.PayoutPending) {
			t.Errorf("status = %q, want pending", payout.Status)
		}
		if payout.RequesterType != "affiliator" {
			t.Errorf("requester type = %q, want affiliator", payout.RequesterType)
		}

		// Requesting leaves the balance untouched until approval
		if got := affiliateBalance(t, db, affiliate.ID); got != 8000 {
			t.Errorf("balance = %d, want 8000 (debit happens on approval)", got)
		}
	})

	t.Run("rejects amounts off the payout unit", func(t *testing.T) {
		db := newTestDB(t)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 20000, nil)
		svc := newPayoutService(db)

		for _, amount := range []int64{3999, 2000, 6000, 4001} {
			_, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
				Amount:          amount,
				PayoutReference: "arjun@upi",
			})
			if !errors.Is(err, ErrInvalidPayoutAmount) {
				t.Errorf("amount %d: error = %v, want ErrInvalidPayoutAmount", amount, err)
			}
		}
	})

	t.Run("rejects amount above balance and creates nothing", func(t *testing.T) {
		db := newTestDB(t)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 3999, nil)
		svc := newPayoutService(db)

		_, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "arjun@upi",
		})
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("error = %v, want ErrInsufficientBalance", err)
		}

		var count int64
		db.Model(&models.PayoutRequest{}).Count(&count)
		if count != 0 {
			t.Errorf("payout requests created = %d, want 0", count)
		}
	})

	t.Run("rejects a second pending request", func(t *testing.T) {
		db := newTestDB(t)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 8000, nil)
		svc := newPayoutService(db)

		if _, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "arjun@upi",
		}); err != nil {
			t.Fatalf("first RequestPayout error = %v", err)
		}

		_, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "arjun@upi",
		})
		if !errors.Is(err, ErrPendingPayoutExists) {
			t.Fatalf("error = %v, want ErrPendingPayoutExists", err)
		}
	})

	t.Run("validates http references as URLs", func(t *testing.T) {
		db := newTestDB(t)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 8000, nil)
		svc := newPayoutService(db)

		_, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "https://",
		})
		if !errors.Is(err, ErrInvalidPayoutAccount) {
			t.Fatalf("error = %v, want ErrInvalidPayoutAccount", err)
		}

		if _, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "https://example.com/pay/arjun-qr",
		}); err != nil {
			t.Fatalf("valid URL reference rejected: %v", err)
		}
	})

	t.Run("super-affiliator requests against own balance", func(t *testing.T) {
		db := newTestDB(t)
		super := createSuperAffiliate(t, db, "super@example.com", "superhub", 4000)
		svc := newPayoutService(db)

		payout, err := svc.RequestPayout(ctx, super.UserID, domain.RoleSuperAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "super@upi",
		})
		if err != nil {
			t.Fatalf("RequestPayout error = %v", err)
		}
		if payout.RequesterType != "super-affiliator" {
			t.Errorf("requester type = %q, want super-affiliator", payout.RequesterType)
		}
	})

	t.Run("counsellor cannot request", func(t *testing.T) {
		db := newTestDB(t)
		user := createUser(t, db, "Priya", "counsellor@example.com", "counsellor")
		svc := newPayoutService(db)

		_, err := svc.RequestPayout(ctx, user.ID, domain.RoleCounsellor, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "priya@upi",
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("error = %v, want ErrForbidden", err)
		}
	})
}

func TestApprovePayout(t *testing.T) {
	ctx := context.Background()

	t.Run("approval debits the requester", func(t *testing.T) {
		db := newTestDB(t)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 8000, nil)
		svc := newPayoutService(db)

		payout, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "arjun@upi",
		})
		if err != nil {
			t.Fatalf("RequestPayout error = %v", err)
		}

		approved, err := svc.Approve(ctx, payout.ID)
		if err != nil {
			t.Fatalf("Approve error = %v", err)
		}
		if approved.Status != string(domain.PayoutApproved) {
			t.Errorf("status = %q, want approved", approved.Status)
		}
		if approved.ProcessedAt == nil {
			t.Error("processed_at not stamped on approval")
		}
		if got := affiliateBalance(t, db, affiliate.ID); got != 4000 {
			t.Errorf("balance = %d, want 4000 after debit", got)
		}
	})

	t.Run("approved request cannot be processed again", func(t *testing.T) {
		db := newTestDB(t)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 8000, nil)
		svc := newPayoutService(db)

		payout, _ := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "arjun@upi",
		})
		if _, err := svc.Approve(ctx, payout.ID); err != nil {
			t.Fatalf("Approve error = %v", err)
		}

		if _, err := svc.Approve(ctx, payout.ID); !errors.Is(err, ErrPayoutNotPending) {
			t.Fatalf("second approve: error = %v, want ErrPayoutNotPending", err)
		}
		if _, err := svc.Reject(ctx, payout.ID); !errors.Is(err, ErrPayoutNotPending) {
			t.Fatalf("reject after approve: error = %v, want ErrPayoutNotPending", err)
		}

		if got := affiliateBalance(t, db, affiliate.ID); got != 4000 {
			t.Errorf("balance = %d, want 4000 (debited once)", got)
		}
	})

	t.Run("approval fails when balance no longer covers it", func(t *testing.T) {
		db := newTestDB(t)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 4000, nil)
		svc := newPayoutService(db)

		payout, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "arjun@upi",
		})
		if err != nil {
			t.Fatalf("RequestPayout error = %v", err)
		}

		// Balance drained between request and approval
		if err := db.Model(&models.Affiliate{}).Where("id = ?", affiliate.ID).
			Update("token_balance", 0).Error; err != nil {
			t.Fatalf("drain balance: %v", err)
		}

		_, err = svc.Approve(ctx, payout.ID)
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("error = %v, want ErrInsufficientBalance", err)
		}

		// Request stays pending and the balance is untouched
		var stored models.PayoutRequest
		if err := db.First(&stored, payout.ID).Error; err != nil {
			t.Fatalf("reload payout: %v", err)
		}
		if stored.Status != string(domain.PayoutPending) {
			t.Errorf("status = %q, want pending after failed approval", stored.Status)
		}
		if got := affiliateBalance(t, db, affiliate.ID); got != 0 {
			t.Errorf("balance = %d, want 0 (unchanged)", got)
		}
	})

	t.Run("rejection flips status without touching the balance", func(t *testing.T) {
		db := newTestDB(t)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 8000, nil)
		svc := newPayoutService(db)

		payout, _ := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "arjun@upi",
		})

		rejected, err := svc.Reject(ctx, payout.ID)
		if err != nil {
			t.Fatalf("Reject error = %v", err)
		}
		if rejected.Status != string(domain.PayoutRejected) {
			t.Errorf("status = %q, want rejected", rejected.Status)
		}
		if got := affiliateBalance(t, db, affiliate.ID); got != 8000 {
			t.Errorf("balance = %d, want 8000 (untouched)", got)
		}

		// A fresh request is allowed after rejection
		if _, err := svc.RequestPayout(ctx, affiliate.UserID, domain.RoleAffiliator, &RequestPayoutInput{
			Amount:          4000,
			PayoutReference: "arjun@upi",
		}); err != nil {
			t.Fatalf("request after rejection: %v", err)
		}
	})

	t.Run("unknown payout id", func(t *testing.T) {
		db := newTestDB(t)
		svc := newPayoutService(db)

		if _, err := svc.Approve(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})
}
