package services

import (
	"testing"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
	"github.com/Manaregr8/affiliate-platform/internal/config"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with all tables migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// newTestConfig returns a config with test secrets and defaults
func newTestConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test_secret",
			RefreshSecret:    "test_refresh_secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Payout:   config.PayoutConfig{Unit: 4000},
		Reminder: config.ReminderConfig{StaleDays: 3, Schedule: "30 8 * * *"},
	}
}

// seedCatalog inserts a small commission catalog
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	courses := []models.CourseCommission{
		{
			Slug:                  "fullstack-development",
			Name:                  "Fullstack Development",
			Category:              "Web Designing & Development",
			AffiliatorTokens:      4000,
			SuperAffiliatorTokens: 500,
		},
		{
			Slug:                  "ai-literacy",
			Name:                  "AI Literacy",
			Category:              "Gen AI & Prompt Engineering Courses",
			AffiliatorTokens:      2000,
			SuperAffiliatorTokens: 250,
		},
	}
	if err := db.Create(&courses).Error; err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
}

// createUser inserts a user with a hashed password
func createUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	hashed, err := password.Hash("Password123!")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// createSuperAffiliate inserts a super-affiliator account with profile
func createSuperAffiliate(t *testing.T, db *gorm.DB, email, referralCode string, balance int64) *models.SuperAffiliate {
	t.Helper()

	user := createUser(t, db, "Super "+referralCode, email, "super-affiliator")
	super := &models.SuperAffiliate{
		UserID:       user.ID,
		ReferralCode: referralCode,
		TokenBalance: balance,
	}
	if err := db.Create(super).Error; err != nil {
		t.Fatalf("failed to create super affiliate: %v", err)
	}
	super.User = user
	return super
}

// createAffiliate inserts an affiliator account with profile
func createAffiliate(t *testing.T, db *gorm.DB, email, referralCode string, balance int64, sponsorID *uint) *models.Affiliate {
	t.Helper()

	user := createUser(t, db, "Affiliator "+referralCode, email, "affiliator")
	affiliate := &models.Affiliate{
		UserID:           user.ID,
		CouponCode:       referralCode + "-COUPON",
		ReferralCode:     referralCode,
		TokenBalance:     balance,
		SuperAffiliateID: sponsorID,
	}
	if err := db.Create(affiliate).Error; err != nil {
		t.Fatalf("failed to create affiliate: %v", err)
	}
	affiliate.User = user
	return affiliate
}

// newLeadService wires a lead service over the given database
func newLeadService(db *gorm.DB) *LeadService {
	return NewLeadService(
		db,
		repositories.NewStudentRepository(db),
		repositories.NewAffiliateRepository(db),
		repositories.NewSuperAffiliateRepository(db),
		repositories.NewCourseCommissionRepository(db),
	)
}

// newPayoutService wires a payout service over the given database
func newPayoutService(db *gorm.DB) *PayoutService {
	return NewPayoutService(
		db,
		repositories.NewPayoutRequestRepository(db),
		repositories.NewAffiliateRepository(db),
		repositories.NewSuperAffiliateRepository(db),
		newTestConfig(),
	)
}

// affiliateBalance reloads an affiliate's balance
func affiliateBalance(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()

	var affiliate models.Affiliate
	if err := db.First(&affiliate, id).Error; err != nil {
		t.Fatalf("failed to reload affiliate: %v", err)
	}
	return affiliate.TokenBalance
}

// superBalance reloads a super-affiliate's balance
func superBalance(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()

	var super models.SuperAffiliate
	if err := db.First(&super, id).Error; err != nil {
		t.Fatalf("failed to reload super affiliate: %v", err)
	}
	return super.TokenBalance
}
