package handlers

import (
	"errors"

	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/core/services"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/pagination"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles issue report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// FileReportRequest represents issue report request body
type FileReportRequest struct {
	Topic         string `json:"topic"`
	Description   string `json:"description"`
	LeadCount     *int   `json:"lead_count"`
	DaysUntouched *int   `json:"days_untouched"`
}

// File records an issue report for the calling user
// @Summary File issue report
// @Description Record a problem report from an affiliator or super-affiliator
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FileReportRequest true "Report data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports [post]
func (h *ReportHandler) File(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	var req FileReportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Topic == "" {
		return response.BadRequest(c, "Topic is required")
	}
	if req.Description == "" {
		return response.BadRequest(c, "Description is required")
	}

	input := &services.FileReportInput{
		Topic:         req.Topic,
		Description:   req.Description,
		LeadCount:     req.LeadCount,
		DaysUntouched: req.DaysUntouched,
	}

	result, err := h.reportService.FileReport(c.Context(), userID, domain.Role(role), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReportTopic):
			return response.BadRequest(c, "Unknown report topic")
		case errors.Is(err, services.ErrDescriptionLength):
			return response.BadRequest(c, "Description must be between 20 and 1500 characters")
		case errors.Is(err, services.ErrLeadCountRange):
			return response.BadRequest(c, "Lead count must be between 1 and 500")
		case errors.Is(err, services.ErrDaysUntouchedRange):
			return response.BadRequest(c, "Days untouched must be between 1 and 365")
		default:
			return response.InternalServerError(c, "Failed to file report")
		}
	}

	return response.Created(c, "Report filed successfully", result)
}

// List lists filed reports for counsellors
// @Summary List issue reports
// @Description List filed issue reports with pagination, newest first
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.reportService.ListReports(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to load reports")
	}

	return response.Success(c, "Reports retrieved successfully", result)
}
