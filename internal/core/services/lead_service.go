package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/metrics"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/pagination"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Lead errors
var (
	ErrCourseNotAssigned = errors.New("lead has no course assigned")
	ErrCategoryMismatch  = errors.New("course category does not match lead interest")
)

// phoneRegex accepts digits plus common phone punctuation, 7 to 15 chars.
var phoneRegex = regexp.MustCompile(`^[0-9+()\-\s]{7,15}$`)

// LeadService handles lead intake and the admission state machine
type LeadService struct {
	db          *gorm.DB
	studentRepo repositories.StudentRepository
	affRepo     repositories.AffiliateRepository
	superRepo   repositories.SuperAffiliateRepository
	courseRepo  repositories.CourseCommissionRepository
}

// NewLeadService creates a new lead service
func NewLeadService(
	db *gorm.DB,
	studentRepo repositories.StudentRepository,
	affRepo repositories.AffiliateRepository,
	superRepo repositories.SuperAffiliateRepository,
	courseRepo repositories.CourseCommissionRepository,
) *LeadService {
	return &LeadService{
		db:          db,
		studentRepo: studentRepo,
		affRepo:     affRepo,
		superRepo:   superRepo,
		courseRepo:  courseRepo,
	}
}

// SubmitLeadInput represents lead submission input
type SubmitLeadInput struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	CourseCategory string `json:"course_category" validate:"required"`
	ReferralCode   string `json:"referral_code" validate:"required"`
}

// TransitionResponse reports the outcome of a status transition
type TransitionResponse struct {
	Lead               *models.StudentResponse `json:"lead"`
	TokensAwarded      int64                   `json:"tokens_awarded"`
	SuperTokensAwarded int64                   `json:"super_tokens_awarded"`
}

// SubmitLead registers a new lead against the affiliate owning the
// referral code. The new lead starts untouched.
func (s *LeadService) SubmitLead(ctx context.Context, input *SubmitLeadInput) (*models.StudentResponse, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !phoneRegex.MatchString(phone) {
		return nil, domain.ErrInvalidInput
	}

	// Category must exist in the commission catalog; keep the catalog's
	// canonical spelling on the lead.
	category, err := s.courseRepo.CategoryExists(ctx, input.CourseCategory)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidInput
		}
		return nil, err
	}

	affiliate, err := s.affRepo.GetByReferralCode(ctx, input.ReferralCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	exists, err := s.studentRepo.ExistsByEmailAndAffiliate(ctx, email, affiliate.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.LeadsRegistered.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrDuplicateEntry
	}

	student := &models.Student{
		Name:           name,
		Email:          email,
		Phone:          phone,
		CourseCategory: category,
		LeadStatus:     string(domain.LeadUntouched),
		AffiliateID:    affiliate.ID,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	student.Affiliate = affiliate

	metrics.LeadsRegistered.WithLabelValues("created").Inc()
	zap.L().Info("lead submitted",
		zap.Uint("lead_id", student.ID),
		zap.Uint("affiliate_id", affiliate.ID),
		zap.String("category", category))

	return student.ToResponse(), nil
}

// ListLeads lists all leads for counsellors, newest first
func (s *LeadService) ListLeads(ctx context.Context, params *pagination.Params) (*pagination.Response, error) {
	students, total, err := s.studentRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.StudentResponse, 0, len(students))
	for _, st := range students {
		responses = append(responses, st.ToResponse())
	}
	return pagination.NewResponse(responses, params, total), nil
}

// ListOwnLeads lists the leads referred by the calling affiliator
func (s *LeadService) ListOwnLeads(ctx context.Context, userID uint) ([]*models.StudentResponse, error) {
	affiliate, err := s.affRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	students, err := s.studentRepo.ListByAffiliate(ctx, affiliate.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.StudentResponse, 0, len(students))
	for _, st := range students {
		responses = append(responses, st.ToResponse())
	}
	return responses, nil
}

// AssignCourse sets the course a lead is being admitted into. The course
// must belong to the lead's declared interest category. Re-assigning the
// same slug is a no-op success.
func (s *LeadService) AssignCourse(ctx context.Context, leadID uint, slug string) (*models.StudentResponse, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}

	student, err := s.studentRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if student.CourseSlug != nil && *student.CourseSlug == slug {
		return student.ToResponse(), nil
	}

	course, err := s.courseRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if !strings.EqualFold(course.Category, student.CourseCategory) {
		return nil, ErrCategoryMismatch
	}

	if err := s.studentRepo.UpdateCourse(ctx, student.ID, course.Slug, course.Name); err != nil {
		return nil, err
	}
	student.CourseSlug = &course.Slug
	student.CourseName = &course.Name

	zap.L().Info("course assigned",
		zap.Uint("lead_id", student.ID),
		zap.String("course_slug", course.Slug))

	return student.ToResponse(), nil
}

// TransitionStatus moves a lead to the target status. Tokens are awarded
// only on the first transition into admitted: the status swap and the
// admitted_at claim are both conditional updates, and the credits ride in
// the same transaction, so a lead can never pay out twice.
func (s *LeadService) TransitionStatus(ctx context.Context, leadID uint, target string) (*TransitionResponse, error) {
	status, err := domain.ParseLeadStatus(target)
	if err != nil {
		return nil, domain.ErrInvalidLeadStatus
	}

	student, err := s.studentRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// Same-status transitions succeed with zero side effects
	if student.LeadStatus == string(status) {
		return &TransitionResponse{Lead: student.ToResponse()}, nil
	}

	// Admission requires a course so the award amount is defined.
	// The catalog entry is read-only, so resolve it here rather than
	// holding a second connection open inside the transaction.
	var course *models.CourseCommission
	if status == domain.LeadAdmitted {
		if student.CourseSlug == nil {
			return nil, ErrCourseNotAssigned
		}
		course, err = s.courseRepo.GetBySlug(ctx, *student.CourseSlug)
		if err != nil {
			return nil, err
		}
	}

	var tokensAwarded, superTokensAwarded int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		studentTx := s.studentRepo.WithTx(tx)

		swapped, err := studentTx.CompareAndSwapStatus(ctx, student.ID, student.LeadStatus, string(status))
		if err != nil {
			return err
		}
		if !swapped {
			return domain.ErrConflict
		}

		if status != domain.LeadAdmitted {
			return nil
		}

		// One-time admission claim; a lead toggled back out of admitted
		// and re-admitted finds the stamp set and earns nothing.
		first, err := studentTx.MarkAdmitted(ctx, student.ID)
		if err != nil {
			return err
		}
		if !first {
			return nil
		}

		if err := s.affRepo.WithTx(tx).CreditTokens(ctx, student.AffiliateID, course.AffiliatorTokens); err != nil {
			return err
		}
		tokensAwarded = course.AffiliatorTokens

		if student.Affiliate != nil && student.Affiliate.SuperAffiliateID != nil {
			superID := *student.Affiliate.SuperAffiliateID
			if err := s.superRepo.WithTx(tx).CreditTokens(ctx, superID, course.SuperAffiliatorTokens); err != nil {
				return err
			}
			superTokensAwarded = course.SuperAffiliatorTokens
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if tokensAwarded > 0 {
		metrics.LeadsAdmitted.Inc()
		metrics.TokensCredited.WithLabelValues("affiliator").Add(float64(tokensAwarded))
		if superTokensAwarded > 0 {
			metrics.TokensCredited.WithLabelValues("super-affiliator").Add(float64(superTokensAwarded))
		}
	}

	updated, err := s.studentRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	zap.L().Info("lead status changed",
		zap.Uint("lead_id", leadID),
		zap.String("from", student.LeadStatus),
		zap.String("to", string(status)),
		zap.Int64("tokens_awarded", tokensAwarded))

	return &TransitionResponse{
		Lead:               updated.ToResponse(),
		TokensAwarded:      tokensAwarded,
		SuperTokensAwarded: superTokensAwarded,
	}, nil
}
