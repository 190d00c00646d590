package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/core/domain"

	"gorm.io/gorm"
)

func TestSubmitLead(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	createAffiliate(t, db, "arjun@example.com", "arjun-link", 0, nil)
	createAffiliate(t, db, "neha@example.com", "neha-link", 0, nil)
	svc := newLeadService(db)
	ctx := context.Background()

	t.Run("creates untouched lead with canonical category", func(t *testing.T) {
		lead, err := svc.SubmitLead(ctx, &SubmitLeadInput{
			Name:           "Rahul Student",
			Email:          "Rahul@Example.com",
			Phone:          "+91 90000 11111",
			CourseCategory: "web designing & development",
			ReferralCode:   "ARJUN-LINK",
		})
		if err != nil {
			t.Fatalf("SubmitLead error = %v", err)
		}
		if lead.LeadStatus != string(domain.LeadUntouched) {
			t.Errorf("lead status = %q, want untouched", lead.LeadStatus)
		}
		if lead.Email != "rahul@example.com" {
			t.Errorf("email = %q, want normalized lowercase", lead.Email)
		}
		if lead.CourseCategory != "Web Designing & Development" {
			t.Errorf("category = %q, want canonical catalog spelling", lead.CourseCategory)
		}
	})

	t.Run("rejects duplicate for same affiliate", func(t *testing.T) {
		_, err := svc.SubmitLead(ctx, &SubmitLeadInput{
			Name:           "Rahul Student",
			Email:          "rahul@example.com",
			Phone:          "+91 90000 11111",
			CourseCategory: "Web Designing & Development",
			ReferralCode:   "arjun-link",
		})
		if !errors.Is(err, domain.ErrDuplicateEntry) {
			t.Fatalf("error = %v, want ErrDuplicateEntry", err)
		}
	})

	t.Run("allows same email via another affiliate", func(t *testing.T) {
		_, err := svc.SubmitLead(ctx, &SubmitLeadInput{
			Name:           "Rahul Student",
			Email:          "rahul@example.com",
			Phone:          "+91 90000 11111",
			CourseCategory: "Web Designing & Development",
			ReferralCode:   "neha-link",
		})
		if err != nil {
			t.Fatalf("SubmitLead via second affiliate error = %v", err)
		}
	})

	t.Run("rejects invalid phone", func(t *testing.T) {
		for _, phone := range []string{"12345", "abcdefgh", "1234567890123456"} {
			_, err := svc.SubmitLead(ctx, &SubmitLeadInput{
				Name:           "Bad Phone",
				Email:          "badphone@example.com",
				Phone:          phone,
				CourseCategory: "Web Designing & Development",
				ReferralCode:   "arjun-link",
			})
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("phone %q: error = %v, want ErrInvalidInput", phone, err)
			}
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := svc.SubmitLead(ctx, &SubmitLeadInput{
			Name:           "No Category",
			Email:          "nocat@example.com",
			Phone:          "+91 90000 44444",
			CourseCategory: "Underwater Basket Weaving",
			ReferralCode:   "arjun-link",
		})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("rejects unknown referral code", func(t *testing.T) {
		_, err := svc.SubmitLead(ctx, &SubmitLeadInput{
			Name:           "Lost Lead",
			Email:          "lost@example.com",
			Phone:          "+91 90000 55555",
			CourseCategory: "Web Designing & Development",
			ReferralCode:   "nobody-link",
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestAssignCourse(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	createAffiliate(t, db, "arjun@example.com", "arjun-link", 0, nil)
	svc := newLeadService(db)
	ctx := context.Background()

	lead, err := svc.SubmitLead(ctx, &SubmitLeadInput{
		Name:           "Rahul Student",
		Email:          "rahul@example.com",
		Phone:          "+91 90000 11111",
		CourseCategory: "Web Designing & Development",
		ReferralCode:   "arjun-link",
	})
	if err != nil {
		t.Fatalf("SubmitLead error = %v", err)
	}

	t.Run("assigns course from matching category", func(t *testing.T) {
		updated, err := svc.AssignCourse(ctx, lead.ID, "fullstack-development")
		if err != nil {
			t.Fatalf("AssignCourse error = %v", err)
		}
		if updated.CourseSlug == nil || *updated.CourseSlug != "fullstack-development" {
			t.Errorf("course slug = %v, want fullstack-development", updated.CourseSlug)
		}
		if updated.CourseName == nil || *updated.CourseName != "Fullstack Development" {
			t.Errorf("course name = %v, want Fullstack Development", updated.CourseName)
		}
	})

	t.Run("same slug is a no-op success", func(t *testing.T) {
		if _, err := svc.AssignCourse(ctx, lead.ID, "fullstack-development"); err != nil {
			t.Fatalf("idempotent AssignCourse error = %v", err)
		}
	})

	t.Run("rejects course from another category", func(t *testing.T) {
		_, err := svc.AssignCourse(ctx, lead.ID, "ai-literacy")
		if !errors.Is(err, ErrCategoryMismatch) {
			t.Fatalf("error = %v, want ErrCategoryMismatch", err)
		}

		var stored models.Student
		if err := db.First(&stored, lead.ID).Error; err != nil {
			t.Fatalf("reload lead: %v", err)
		}
		if stored.CourseSlug == nil || *stored.CourseSlug != "fullstack-development" {
			t.Errorf("course slug changed on rejected assignment: %v", stored.CourseSlug)
		}
	})

	t.Run("rejects unknown slug", func(t *testing.T) {
		_, err := svc.AssignCourse(ctx, lead.ID, "no-such-course")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("rejects unknown lead", func(t *testing.T) {
		_, err := svc.AssignCourse(ctx, 9999, "fullstack-development")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestTransitionStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*LeadService, *models.Affiliate, *models.SuperAffiliate, uint, *gorm.DB) {
		db := newTestDB(t)
		seedCatalog(t, db)
		super := createSuperAffiliate(t, db, "super@example.com", "superhub", 0)
		affiliate := createAffiliate(t, db, "arjun@example.com", "arjun-link", 0, &super.ID)
		svc := newLeadService(db)

		lead, err := svc.SubmitLead(ctx, &SubmitLeadInput{
			Name:           "Rahul Student",
			Email:          "rahul@example.com",
			Phone:          "+91 90000 11111",
			CourseCategory: "Web Designing & Development",
			ReferralCode:   "arjun-link",
		})
		if err != nil {
			t.Fatalf("SubmitLead error = %v", err)
		}
		if _, err := svc.AssignCourse(ctx, lead.ID, "fullstack-development"); err != nil {
			t.Fatalf("AssignCourse error = %v", err)
		}
		return svc, affiliate, super, lead.ID, db
	}

	t.Run("first admission credits affiliate and sponsor", func(t *testing.T) {
		svc, affiliate, super, leadID, db := setup(t)

		result, err := svc.TransitionStatus(ctx, leadID, "admitted")
		if err != nil {
			t.Fatalf("TransitionStatus error = %v", err)
		}
		if result.TokensAwarded != 4000 {
			t.Errorf("tokens awarded = %d, want 4000", result.TokensAwarded)
		}
		if result.SuperTokensAwarded != 500 {
			t.Errorf("super tokens awarded = %d, want 500", result.SuperTokensAwarded)
		}
		if got := affiliateBalance(t, db, affiliate.ID); got != 4000 {
			t.Errorf("affiliate balance = %d, want 4000", got)
		}
		if got := superBalance(t, db, super.ID); got != 500 {
			t.Errorf("super balance = %d, want 500", got)
		}
	})

	t.Run("same status transition is a no-op", func(t *testing.T) {
		svc, affiliate, _, leadID, db := setup(t)

		result, err := svc.TransitionStatus(ctx, leadID, "untouched")
		if err != nil {
			t.Fatalf("TransitionStatus error = %v", err)
		}
		if result.TokensAwarded != 0 {
			t.Errorf("tokens awarded = %d, want 0", result.TokensAwarded)
		}
		if got := affiliateBalance(t, db, affiliate.ID); got != 0 {
			t.Errorf("affiliate balance = %d, want 0", got)
		}
	})

	t.Run("toggling back and re-admitting credits exactly once", func(t *testing.T) {
		svc, affiliate, super, leadID, db := setup(t)

		sequence := []string{"processing", "admitted", "processing", "admitted"}
		var lastAward int64
		for _, status := range sequence {
			result, err := svc.TransitionStatus(ctx, leadID, status)
			if err != nil {
				t.Fatalf("TransitionStatus(%s) error = %v", status, err)
			}
			lastAward = result.TokensAwarded
		}

		if lastAward != 0 {
			t.Errorf("second admission awarded %d tokens, want 0", lastAward)
		}
		if got := affiliateBalance(t, db, affiliate.ID); got != 4000 {
			t.Errorf("affiliate balance = %d, want 4000 (credited once)", got)
		}
		if got := superBalance(t, db, super.ID); got != 500 {
			t.Errorf("super balance = %d, want 500 (credited once)", got)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, _, _, leadID, _ := setup(t)

		_, err := svc.TransitionStatus(ctx, leadID, "rejected")
		if !errors.Is(err, domain.ErrInvalidLeadStatus) {
			t.Fatalf("error = %v, want ErrInvalidLeadStatus", err)
		}
	})

	t.Run("blocks admission without a course", func(t *testing.T) {
		db := newTestDB(t)
		seedCatalog(t, db)
		createAffiliate(t, db, "neha@example.com", "neha-link", 0, nil)
		svc := newLeadService(db)

		lead, err := svc.SubmitLead(ctx, &SubmitLeadInput{
			Name:           "Sneha Student",
			Email:          "sneha@example.com",
			Phone:          "+91 90000 22222",
			CourseCategory: "Web Designing & Development",
			ReferralCode:   "neha-link",
		})
		if err != nil {
			t.Fatalf("SubmitLead error = %v", err)
		}

		_, err = svc.TransitionStatus(ctx, lead.ID, "admitted")
		if !errors.Is(err, ErrCourseNotAssigned) {
			t.Fatalf("error = %v, want ErrCourseNotAssigned", err)
		}
	})
}
