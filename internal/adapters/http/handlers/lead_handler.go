package handlers

import (
	"errors"
	"strconv"

	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/core/services"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/pagination"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LeadHandler handles lead intake and admission endpoints
type LeadHandler struct {
	leadService *services.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// SubmitLeadRequest represents lead submission request body
type SubmitLeadRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	CourseCategory string `json:"course_category"`
	ReferralCode   string `json:"referral_code"`
}

// AssignCourseRequest represents course assignment request body
type AssignCourseRequest struct {
	CourseSlug string `json:"course_slug"`
}

// TransitionRequest represents status transition request body
type TransitionRequest struct {
	Status string `json:"status"`
}

// Submit handles public lead submission via referral code
// @Summary Submit lead
// @Description Register a new lead against the affiliate owning the referral code
// @Tags Leads
// @Accept json
// @Produce json
// @Param body body SubmitLeadRequest true "Lead data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leads [post]
func (h *LeadHandler) Submit(c *fiber.Ctx) error {
	var req SubmitLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Phone == "" {
		return response.BadRequest(c, "Phone is required")
	}
	if req.CourseCategory == "" {
		return response.BadRequest(c, "Course category is required")
	}
	if req.ReferralCode == "" {
		return response.BadRequest(c, "Referral code is required")
	}

	input := &services.SubmitLeadInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		CourseCategory: req.CourseCategory,
		ReferralCode:   req.ReferralCode,
	}

	result, err := h.leadService.SubmitLead(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid lead data")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Referral code not found")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Lead already registered with this affiliate")
		default:
			return response.InternalServerError(c, "Failed to submit lead")
		}
	}

	return response.Created(c, "Lead submitted successfully", result)
}

// List lists all leads for counsellors
// @Summary List leads
// @Description List all leads with pagination, newest first
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.leadService.ListLeads(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to load leads")
	}

	return response.Success(c, "Leads retrieved successfully", result)
}

// AssignCourse assigns a catalog course to a lead
// @Summary Assign course
// @Description Assign a course from the lead's declared interest category
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param body body AssignCourseRequest true "Course slug"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /leads/{id}/course [put]
func (h *LeadHandler) AssignCourse(c *fiber.Ctx) error {
	leadID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}

	var req AssignCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CourseSlug == "" {
		return response.BadRequest(c, "Course slug is required")
	}

	result, err := h.leadService.AssignCourse(c.Context(), uint(leadID), req.CourseSlug)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Lead or course not found")
		case errors.Is(err, services.ErrCategoryMismatch):
			return response.BadRequest(c, "Course does not belong to the lead's interest category")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid course slug")
		default:
			return response.InternalServerError(c, "Failed to assign course")
		}
	}

	return response.Success(c, "Course assigned successfully", result)
}

// Transition moves a lead to a target status
// @Summary Transition lead status
// @Description Move a lead between untouched, processing and admitted; first admission credits commissions
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param body body TransitionRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leads/{id}/status [put]
func (h *LeadHandler) Transition(c *fiber.Ctx) error {
	leadID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid lead ID")
	}

	var req TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	result, err := h.leadService.TransitionStatus(c.Context(), uint(leadID), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLeadStatus):
			return response.BadRequest(c, "Status must be one of untouched, processing, admitted")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Lead not found")
		case errors.Is(err, services.ErrCourseNotAssigned):
			return response.BadRequest(c, "Assign a course before admitting this lead")
		case errors.Is(err, domain.ErrConflict):
			return response.Conflict(c, "Lead was updated concurrently, please retry")
		default:
			return response.InternalServerError(c, "Failed to update lead status")
		}
	}

	return response.Success(c, "Lead status updated successfully", result)
}
