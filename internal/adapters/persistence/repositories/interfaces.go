package repositories

import (
	"context"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	WithTx(tx *gorm.DB) UserRepository
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// AffiliateRepository defines affiliate ledger access.
// CreditTokens/DebitTokens are the only balance mutators; DebitTokens is
// guarded so a balance can never go negative.
type AffiliateRepository interface {
	Create(ctx context.Context, affiliate *models.Affiliate) error
	GetByID(ctx context.Context, id uint) (*models.Affiliate, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Affiliate, error)
	GetByReferralCode(ctx context.Context, code string) (*models.Affiliate, error)
	CodeInUse(ctx context.Context, couponCode, referralCode string) (bool, error)
	CreditTokens(ctx context.Context, id uint, amount int64) error
	DebitTokens(ctx context.Context, id uint, amount int64) (bool, error)
	WithTx(tx *gorm.DB) AffiliateRepository
}

// SuperAffiliateRepository defines super-affiliate ledger access
type SuperAffiliateRepository interface {
	Create(ctx context.Context, super *models.SuperAffiliate) error
	GetByID(ctx context.Context, id uint) (*models.SuperAffiliate, error)
	GetByUserID(ctx context.Context, userID uint) (*models.SuperAffiliate, error)
	GetByReferralCode(ctx context.Context, code string) (*models.SuperAffiliate, error)
	CodeInUse(ctx context.Context, referralCode string) (bool, error)
	CreditTokens(ctx context.Context, id uint, amount int64) error
	DebitTokens(ctx context.Context, id uint, amount int64) (bool, error)
	WithTx(tx *gorm.DB) SuperAffiliateRepository
}

// StudentRepository defines lead repository interface
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	ExistsByEmailAndAffiliate(ctx context.Context, email string, affiliateID uint) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Student, int64, error)
	ListByAffiliate(ctx context.Context, affiliateID uint) ([]*models.Student, error)
	UpdateCourse(ctx context.Context, id uint, slug, name string) error
	CompareAndSwapStatus(ctx context.Context, id uint, from, to string) (bool, error)
	MarkAdmitted(ctx context.Context, id uint) (bool, error)
	CountUntouchedOlderThan(ctx context.Context, days int) (int64, error)
	WithTx(tx *gorm.DB) StudentRepository
}

// PayoutRequestRepository defines payout request repository interface
type PayoutRequestRepository interface {
	Create(ctx context.Context, payout *models.PayoutRequest) error
	GetByID(ctx context.Context, id uint) (*models.PayoutRequest, error)
	HasPendingForAffiliate(ctx context.Context, affiliateID uint) (bool, error)
	HasPendingForSuperAffiliate(ctx context.Context, superID uint) (bool, error)
	ListPending(ctx context.Context) ([]*models.PayoutRequest, error)
	ListByAffiliate(ctx context.Context, affiliateID uint) ([]*models.PayoutRequest, error)
	ListBySuperAffiliate(ctx context.Context, superID uint) ([]*models.PayoutRequest, error)
	CompareAndSwapStatus(ctx context.Context, id uint, from, to string) (bool, error)
	WithTx(tx *gorm.DB) PayoutRequestRepository
}

// CourseCommissionRepository defines read access to the commission catalog
type CourseCommissionRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.CourseCommission, error)
	CategoryExists(ctx context.Context, category string) (string, error)
	List(ctx context.Context) ([]*models.CourseCommission, error)
}

// IssueReportRepository defines issue report repository interface
type IssueReportRepository interface {
	Create(ctx context.Context, report *models.IssueReport) error
	List(ctx context.Context, offset, limit int) ([]*models.IssueReport, int64, error)
}
