package config

import (
	"log"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Each seeder is idempotent so Run is safe on
// every startup.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedCounsellor(); err != nil {
		log.Printf("⚠️ Counsellor seeder skipped: %v", err)
	}
	if err := s.seedCourseCommissions(); err != nil {
		log.Printf("⚠️ Course commission seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedCounsellor seeds the default counsellor account.
// This is for development/testing only; production counsellors are
// provisioned through a secure process.
func (s *Seeder) seedCounsellor() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "counsellor").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("Password123!")
	if err != nil {
		return err
	}

	counsellor := &models.User{
		Name:     "Priya Counsellor",
		Email:    "counsellor@example.com",
		Password: hashedPassword,
		Role:     "counsellor",
	}

	if err := s.db.Create(counsellor).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded counsellor account: %s", counsellor.Email)
	return nil
}

// seedCourseCommissions seeds the commission catalog
func (s *Seeder) seedCourseCommissions() error {
	var count int64
	s.db.Model(&models.CourseCommission{}).Count(&count)
	if count > 0 {
		return nil
	}

	courses := []models.CourseCommission{
		{
			Slug:                  "fullstack-development",
			Name:                  "Fullstack Development",
			Category:              "Web Designing & Development",
			AffiliatorTokens:      4000,
			SuperAffiliatorTokens: 500,
		},
		{
			Slug:                  "frontend-development",
			Name:                  "Frontend Development",
			Category:              "Web Designing & Development",
			AffiliatorTokens:      3000,
			SuperAffiliatorTokens: 400,
		},
		{
			Slug:                  "ui-ux-design",
			Name:                  "UI/UX Design",
			Category:              "Web Designing & Development",
			AffiliatorTokens:      2500,
			SuperAffiliatorTokens: 300,
		},
		{
			Slug:                  "advanced-certification-data-analytics-ai",
			Name:                  "Advanced Certification in Data Analytics and AI",
			Category:              "Data Analytics Courses",
			AffiliatorTokens:      5000,
			SuperAffiliatorTokens: 600,
		},
		{
			Slug:                  "data-analytics-foundation",
			Name:                  "Data Analytics Foundation",
			Category:              "Data Analytics Courses",
			AffiliatorTokens:      3000,
			SuperAffiliatorTokens: 400,
		},
		{
			Slug:                  "ai-literacy",
			Name:                  "AI Literacy",
			Category:              "Gen AI & Prompt Engineering Courses",
			AffiliatorTokens:      2000,
			SuperAffiliatorTokens: 250,
		},
		{
			Slug:                  "prompt-engineering-professional",
			Name:                  "Prompt Engineering Professional",
			Category:              "Gen AI & Prompt Engineering Courses",
			AffiliatorTokens:      3500,
			SuperAffiliatorTokens: 450,
		},
		{
			Slug:                  "digital-marketing-mastery",
			Name:                  "Digital Marketing Mastery",
			Category:              "Digital Marketing Courses",
			AffiliatorTokens:      3000,
			SuperAffiliatorTokens: 350,
		},
	}

	if err := s.db.Create(&courses).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d course commissions", len(courses))
	return nil
}
