package services

import (
	"context"

	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/models"
	"github.com/Manaregr8/affiliate-platform/internal/adapters/persistence/repositories"
)

// CatalogService exposes the read-only commission catalog
type CatalogService struct {
	courseRepo repositories.CourseCommissionRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(courseRepo repositories.CourseCommissionRepository) *CatalogService {
	return &CatalogService{courseRepo: courseRepo}
}

// CourseResponse DTO
type CourseResponse struct {
	Slug                  string `json:"slug"`
	Name                  string `json:"name"`
	Category              string `json:"category"`
	AffiliatorTokens      int64  `json:"affiliator_tokens"`
	SuperAffiliatorTokens int64  `json:"super_affiliator_tokens"`
}

// ListCourses lists the commission catalog grouped by category ordering
func (s *CatalogService) ListCourses(ctx context.Context) ([]*CourseResponse, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, toCourseResponse(c))
	}
	return responses, nil
}

func toCourseResponse(c *models.CourseCommission) *CourseResponse {
	return &CourseResponse{
		Slug:                  c.Slug,
		Name:                  c.Name,
		Category:              c.Category,
		AffiliatorTokens:      c.AffiliatorTokens,
		SuperAffiliatorTokens: c.SuperAffiliatorTokens,
	}
}
