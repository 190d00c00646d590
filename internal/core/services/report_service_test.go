package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
)

func intPtr(v int) *int { return &v }

func TestFileReport(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createUser(t, db, "Arjun", "arjun@example.com", "affiliator")
	svc := NewReportService(repositories.NewIssueReportRepository(db))

	validDescription := "Several of my leads have sat untouched for over a week now."

	t.Run("records a valid report", func(t *testing.T) {
		report, err := svc.FileReport(ctx, user.ID, domain.RoleAffiliator, &FileReportInput{
			Topic:         "untouched_leads",
			Description:   validDescription,
			LeadCount:     intPtr(6),
			DaysUntouched: intPtr(9),
		})
		if err != nil {
			t.Fatalf("FileReport error = %v", err)
		}
		if report.Topic != string(domain.TopicUntouchedLeads) {
			t.Errorf("topic = %q, want untouched_leads", report.Topic)
		}
		if report.Role != string(domain.RoleAffiliator) {
			t.Errorf("role = %q, want affiliator", report.Role)
		}
	})

	t.Run("rejects unknown topic", func(t *testing.T) {
		_, err := svc.FileReport(ctx, user.ID, domain.RoleAffiliator, &FileReportInput{
			Topic:       "gossip",
			Description: validDescription,
		})
		if !errors.Is(err, domain.ErrInvalidReportTopic) {
			t.Fatalf("error = %v, want ErrInvalidReportTopic", err)
		}
	})

	t.Run("rejects description outside bounds", func(t *testing.T) {
		for _, desc := range []string{"too short", strings.Repeat("x", 1501)} {
			_, err := svc.FileReport(ctx, user.ID, domain.RoleAffiliator, &FileReportInput{
				Topic:       "other",
				Description: desc,
			})
			if !errors.Is(err, ErrDescriptionLength) {
				t.Errorf("description len %d: error = %v, want ErrDescriptionLength", len(desc), err)
			}
		}
	})

	t.Run("rejects out-of-range supporting numbers", func(t *testing.T) {
		_, err := svc.FileReport(ctx, user.ID, domain.RoleAffiliator, &FileReportInput{
			Topic:       "untouched_leads",
			Description: validDescription,
			LeadCount:   intPtr(501),
		})
		if !errors.Is(err, ErrLeadCountRange) {
			t.Fatalf("error = %v, want ErrLeadCountRange", err)
		}

		_, err = svc.FileReport(ctx, user.ID, domain.RoleAffiliator, &FileReportInput{
			Topic:         "untouched_leads",
			Description:   validDescription,
			DaysUntouched: intPtr(0),
		})
		if !errors.Is(err, ErrDaysUntouchedRange) {
			t.Fatalf("error = %v, want ErrDaysUntouchedRange", err)
		}
	})
}
