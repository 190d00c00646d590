package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity & Sessions
// ============================================================

// User represents users table. Role is fixed at creation.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Ledger entities
// ============================================================

// Affiliate is the partner profile paired one-to-one with an affiliator user.
// TokenBalance never goes negative; only the lead admission credit path and
// the payout approval debit path mutate it, inside a transaction.
type Affiliate struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	CouponCode       string         `gorm:"uniqueIndex;size:20;not null" json:"coupon_code"`
	ReferralCode     string         `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	TokenBalance     int64          `gorm:"not null;default:0" json:"token_balance"`
	SuperAffiliateID *uint          `gorm:"index" json:"super_affiliate_id"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User           *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SuperAffiliate *SuperAffiliate `gorm:"foreignKey:SuperAffiliateID" json:"super_affiliate,omitempty"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}

// AffiliateResponse DTO
type AffiliateResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	CouponCode   string `json:"coupon_code"`
	ReferralCode string `json:"referral_code"`
	TokenBalance int64  `json:"token_balance"`
	SponsorCode  string `json:"sponsor_code,omitempty"`
}

func (a *Affiliate) ToResponse() *AffiliateResponse {
	resp := &AffiliateResponse{
		ID:           a.ID,
		CouponCode:   a.CouponCode,
		ReferralCode: a.ReferralCode,
		TokenBalance: a.TokenBalance,
	}
	if a.User != nil {
		resp.Name = a.User.Name
		resp.Email = a.User.Email
	}
	if a.SuperAffiliate != nil {
		resp.SponsorCode = a.SuperAffiliate.ReferralCode
	}
	return resp
}

// SuperAffiliate sponsors affiliates and earns override tokens on their admissions
type SuperAffiliate struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	ReferralCode string         `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	TokenBalance int64          `gorm:"not null;default:0" json:"token_balance"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Affiliates []Affiliate `gorm:"foreignKey:SuperAffiliateID" json:"affiliates,omitempty"`
}

func (SuperAffiliate) TableName() string {
	return "super_affiliates"
}

// SuperAffiliateResponse DTO
type SuperAffiliateResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	ReferralCode string `json:"referral_code"`
	TokenBalance int64  `json:"token_balance"`
}

func (sa *SuperAffiliate) ToResponse() *SuperAffiliateResponse {
	resp := &SuperAffiliateResponse{
		ID:           sa.ID,
		ReferralCode: sa.ReferralCode,
		TokenBalance: sa.TokenBalance,
	}
	if sa.User != nil {
		resp.Name = sa.User.Name
		resp.Email = sa.User.Email
	}
	return resp
}

// Student represents a lead referred by exactly one affiliate.
// The (email, affiliate_id) pair is unique: the same affiliate cannot
// register the same email twice, but another affiliate can.
type Student struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Email          string         `gorm:"size:100;not null;uniqueIndex:idx_students_email_affiliate" json:"email"`
	Phone          string         `gorm:"size:20;not null" json:"phone"`
	CourseCategory string         `gorm:"size:100;not null" json:"course_category"`
	CourseSlug     *string        `gorm:"size:100" json:"course_slug"`
	CourseName     *string        `gorm:"size:150" json:"course_name"`
	LeadStatus     string         `gorm:"size:20;not null;default:'untouched'" json:"lead_status"`
	AdmittedAt     *time.Time     `json:"admitted_at"`
	AffiliateID    uint           `gorm:"not null;uniqueIndex:idx_students_email_affiliate;index" json:"affiliate_id"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Affiliate *Affiliate `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
}

func (Student) TableName() string {
	return "students"
}

// StudentResponse DTO
type StudentResponse struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	CourseCategory string     `json:"course_category"`
	CourseSlug     *string    `json:"course_slug"`
	CourseName     *string    `json:"course_name"`
	LeadStatus     string     `json:"lead_status"`
	AdmittedAt     *time.Time `json:"admitted_at"`
	AffiliateID    uint       `json:"affiliate_id"`
	AffiliateName  string     `json:"affiliate_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (s *Student) ToResponse() *StudentResponse {
	resp := &StudentResponse{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		CourseCategory: s.CourseCategory,
		CourseSlug:     s.CourseSlug,
		CourseName:     s.CourseName,
		LeadStatus:     s.LeadStatus,
		AdmittedAt:     s.AdmittedAt,
		AffiliateID:    s.AffiliateID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.Affiliate != nil && s.Affiliate.User != nil {
		resp.AffiliateName = s.Affiliate.User.Name
	}
	return resp
}

// PayoutRequest is a withdrawal claim against exactly one of
// AffiliateID/SuperAffiliateID. At most one pending request may exist per
// account; terminal rows are immutable.
type PayoutRequest struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	AffiliateID      *uint      `gorm:"index" json:"affiliate_id"`
	SuperAffiliateID *uint      `gorm:"index" json:"super_affiliate_id"`
	Amount           int64      `gorm:"not null" json:"amount"`
	Status           string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PayoutReference  string     `gorm:"size:255;not null" json:"payout_reference"`
	ProcessedAt      *time.Time `json:"processed_at"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Affiliate      *Affiliate      `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
	SuperAffiliate *SuperAffiliate `gorm:"foreignKey:SuperAffiliateID" json:"super_affiliate,omitempty"`
}

func (PayoutRequest) TableName() string {
	return "payout_requests"
}

// PayoutRequestResponse DTO
type PayoutRequestResponse struct {
	ID              uint       `json:"id"`
	Amount          int64      `json:"amount"`
	Status          string     `json:"status"`
	PayoutReference string     `json:"payout_reference"`
	RequesterType   string     `json:"requester_type"`
	RequesterName   string     `json:"requester_name,omitempty"`
	RequesterEmail  string     `json:"requester_email,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (p *PayoutRequest) ToResponse() *PayoutRequestResponse {
	resp := &PayoutRequestResponse{
		ID:              p.ID,
		Amount:          p.Amount,
		Status:          p.Status,
		PayoutReference: p.PayoutReference,
		ProcessedAt:     p.ProcessedAt,
		CreatedAt:       p.CreatedAt,
	}
	switch {
	case p.AffiliateID != nil:
		resp.RequesterType = "affiliator"
		if p.Affiliate != nil && p.Affiliate.User != nil {
			resp.RequesterName = p.Affiliate.User.Name
			resp.RequesterEmail = p.Affiliate.User.Email
		}
	case p.SuperAffiliateID != nil:
		resp.RequesterType = "super-affiliator"
		if p.SuperAffiliate != nil && p.SuperAffiliate.User != nil {
			resp.RequesterName = p.SuperAffiliate.User.Name
			resp.RequesterEmail = p.SuperAffiliate.User.Email
		}
	}
	return resp
}

// ============================================================
// Commission catalog (Master)
// ============================================================

// CourseCommission maps a course to the token awards it pays out.
// Read-mostly; seeded at startup and administered outside the API.
type CourseCommission struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	Slug                  string         `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Name                  string         `gorm:"size:150;not null" json:"name"`
	Category              string         `gorm:"size:100;not null;index" json:"category"`
	AffiliatorTokens      int64          `gorm:"not null" json:"affiliator_tokens"`
	SuperAffiliatorTokens int64          `gorm:"not null" json:"super_affiliator_tokens"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CourseCommission) TableName() string {
	return "course_commissions"
}

// ============================================================
// Issue reports
// ============================================================

// IssueReport is a problem report filed by an affiliator or super-affiliator
type IssueReport struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Role          string    `gorm:"size:20;not null" json:"role"`
	Topic         string    `gorm:"size:30;not null" json:"topic"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	LeadCount     *int      `json:"lead_count"`
	DaysUntouched *int      `json:"days_untouched"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (IssueReport) TableName() string {
	return "issue_reports"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all owned tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&SuperAffiliate{},
		&Affiliate{},
		&Student{},
		&PayoutRequest{},
		&CourseCommission{},
		&IssueReport{},
	)
}
