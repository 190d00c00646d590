package handlers

import (
	"errors"

	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/core/services"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AffiliateHandler handles affiliate registration and profile endpoints
type AffiliateHandler struct {
	affiliateService *services.AffiliateService
	leadService      *services.LeadService
}

// NewAffiliateHandler creates a new affiliate handler
func NewAffiliateHandler(affiliateService *services.AffiliateService, leadService *services.LeadService) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateService: affiliateService,
		leadService:      leadService,
	}
}

// RegisterRequest represents affiliate registration request body
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	SponsorCode string `json:"sponsor_code"`
}

// RegisterAffiliator handles affiliator account creation
// @Summary Register affiliator
// @Description Create an affiliator account with a fresh referral code
// @Tags Affiliates
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register/affiliator [post]
func (h *AffiliateHandler) RegisterAffiliator(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	input := &services.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		SponsorCode: req.SponsorCode,
	}

	result, err := h.affiliateService.RegisterAffiliator(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Sponsor referral code not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid registration data")
		case errors.Is(err, domain.ErrExhaustedRetries):
			return response.InternalServerError(c, "Could not allocate a referral code, please retry")
		default:
			return response.InternalServerError(c, "Failed to register affiliator")
		}
	}

	return response.Created(c, "Affiliator registered successfully", result)
}

// RegisterSuperAffiliator handles super-affiliator account creation
// @Summary Register super-affiliator
// @Description Create a super-affiliator account with a fresh referral code
// @Tags Affiliates
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register/super-affiliator [post]
func (h *AffiliateHandler) RegisterSuperAffiliator(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	input := &services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	result, err := h.affiliateService.RegisterSuperAffiliator(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid registration data")
		case errors.Is(err, domain.ErrExhaustedRetries):
			return response.InternalServerError(c, "Could not allocate a referral code, please retry")
		default:
			return response.InternalServerError(c, "Failed to register super-affiliator")
		}
	}

	return response.Created(c, "Super-affiliator registered successfully", result)
}

// Profile returns the calling account's ledger profile
// @Summary Get own profile
// @Description Get the calling affiliator or super-affiliator profile with balance
// @Tags Affiliates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /affiliates/me [get]
func (h *AffiliateHandler) Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	switch domain.Role(role) {
	case domain.RoleAffiliator:
		profile, err := h.affiliateService.GetAffiliateProfile(c.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return response.NotFound(c, "Affiliate profile not found")
			}
			return response.InternalServerError(c, "Failed to load profile")
		}
		return response.Success(c, "Profile retrieved successfully", profile)
	case domain.RoleSuperAffiliator:
		profile, err := h.affiliateService.GetSuperAffiliateProfile(c.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return response.NotFound(c, "Super-affiliate profile not found")
			}
			return response.InternalServerError(c, "Failed to load profile")
		}
		return response.Success(c, "Profile retrieved successfully", profile)
	default:
		return response.Forbidden(c, "No affiliate profile for this role")
	}
}

// MyLeads lists the leads referred by the calling affiliator
// @Summary List own leads
// @Description List the leads referred by the calling affiliator
// @Tags Affiliates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /affiliates/me/leads [get]
func (h *AffiliateHandler) MyLeads(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	leads, err := h.leadService.ListOwnLeads(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Affiliate profile not found")
		}
		return response.InternalServerError(c, "Failed to load leads")
	}

	return response.Success(c, "Leads retrieved successfully", leads)
}
