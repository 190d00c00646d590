package handlers

import (
	"github.com/Manaregr8/affiliate-platform/internal/core/services"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler exposes the commission catalog
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List lists the commission catalog
// @Summary List courses
// @Description List all courses with their commission amounts
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /courses [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	result, err := h.catalogService.ListCourses(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load course catalog")
	}

	return response.Success(c, "Courses retrieved successfully", result)
}
