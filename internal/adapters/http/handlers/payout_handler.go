package handlers

import (
	"errors"
	"strconv"

	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
	"github.com/Manaregr8/affiliate-platform/internal/core/services"
	"github.com/Manaregr8/affiliate-platform/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PayoutHandler handles payout request and decision endpoints
type PayoutHandler struct {
	payoutService *services.PayoutService
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(payoutService *services.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// RequestPayoutRequest represents payout request body
type RequestPayoutRequest struct {
	Amount          int64  `json:"amount"`
	PayoutReference string `json:"payout_reference"`
}

// Request files a payout request for the calling account
// @Summary Request payout
// @Description File a withdrawal claim against the calling account's token balance
// @Tags Payouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RequestPayoutRequest true "Payout data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payouts [post]
func (h *PayoutHandler) Request(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	var req RequestPayoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount is required")
	}
	if req.PayoutReference == "" {
		return response.BadRequest(c, "Payout reference is required")
	}

	input := &services.RequestPayoutInput{
		Amount:          req.Amount,
		PayoutReference: req.PayoutReference,
	}

	result, err := h.payoutService.RequestPayout(c.Context(), userID, domain.Role(role), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPayoutAmount):
			return response.BadRequest(c, "Amount must be a positive multiple of the payout unit")
		case errors.Is(err, services.ErrInvalidPayoutAccount):
			return response.BadRequest(c, "Payout reference must be a valid URL or UPI handle")
		case errors.Is(err, services.ErrInsufficientBalance):
			return response.BadRequest(c, "Token balance does not cover the requested amount")
		case errors.Is(err, services.ErrPendingPayoutExists):
			return response.Conflict(c, "A pending payout request already exists")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Affiliate profile not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This role cannot request payouts")
		default:
			return response.InternalServerError(c, "Failed to request payout")
		}
	}

	return response.Created(c, "Payout requested successfully", result)
}

// My lists the calling account's payout requests
// @Summary List own payouts
// @Description List the calling account's payout requests, newest first
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /payouts/my [get]
func (h *PayoutHandler) My(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	result, err := h.payoutService.ListForUser(c.Context(), userID, domain.Role(role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Affiliate profile not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "This role has no payout history")
		default:
			return response.InternalServerError(c, "Failed to load payouts")
		}
	}

	return response.Success(c, "Payouts retrieved successfully", result)
}

// Pending lists pending payout requests for counsellors
// @Summary List pending payouts
// @Description List all pending payout requests awaiting a decision
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /payouts/pending [get]
func (h *PayoutHandler) Pending(c *fiber.Ctx) error {
	result, err := h.payoutService.ListPending(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load pending payouts")
	}

	return response.Success(c, "Pending payouts retrieved successfully", result)
}

// Approve approves a pending payout, debiting the requester's balance
// @Summary Approve payout
// @Description Approve a pending payout request and debit the requester's balance
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payout request ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payouts/{id}/approve [put]
func (h *PayoutHandler) Approve(c *fiber.Ctx) error {
	payoutID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payout ID")
	}

	result, err := h.payoutService.Approve(c.Context(), uint(payoutID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Payout request not found")
		case errors.Is(err, services.ErrPayoutNotPending):
			return response.Conflict(c, "Payout request has already been processed")
		case errors.Is(err, services.ErrInsufficientBalance):
			return response.BadRequest(c, "Requester's balance no longer covers this payout")
		default:
			return response.InternalServerError(c, "Failed to approve payout")
		}
	}

	return response.Success(c, "Payout approved successfully", result)
}

// Reject rejects a pending payout without touching any balance
// @Summary Reject payout
// @Description Reject a pending payout request, leaving the balance unchanged
// @Tags Payouts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payout request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payouts/{id}/reject [put]
func (h *PayoutHandler) Reject(c *fiber.Ctx) error {
	payoutID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payout ID")
	}

	result, err := h.payoutService.Reject(c.Context(), uint(payoutID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Payout request not found")
		case errors.Is(err, services.ErrPayoutNotPending):
			return response.Conflict(c, "Payout request has already been processed")
		default:
			return response.InternalServerError(c, "Failed to reject payout")
		}
	}

	return response.Success(c, "Payout rejected successfully", result)
}
