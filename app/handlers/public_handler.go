// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/shiftwave/shiftwave/app/dto"
	businessflow "github.com/shiftwave/shiftwave/business_flow"
	"github.com/shiftwave/shiftwave/utils"
)

// PublicHandlerInterface defines the contract for the anonymous public surface
type PublicHandlerInterface interface {
	GetShiftByCode(c fiber.Ctx) error
	ExpressInterest(c fiber.Ctx) error
}

// PublicHandler serves the unauthenticated code-lookup and interest endpoints
type PublicHandler struct {
	interestFlow businessflow.InterestFlow
	validator    *validator.Validate
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(interestFlow businessflow.InterestFlow) *PublicHandler {
	return &PublicHandler{
		interestFlow: interestFlow,
		validator:    validator.New(),
	}
}

func (h *PublicHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PublicHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// GetShiftByCode serves the anonymous shift summary
// @Summary Get Shift By Code
// @Description Retrieve the public summary of an available shift by its short code
// @Tags Public
// @Produce json
// @Param code path string true "Shift code"
// @Success 200 {object} dto.APIResponse{data=dto.PublicShiftDTO} "Shift retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Shift unavailable"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /s/{code} [get]
func (h *PublicHandler) GetShiftByCode(c fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return h.ErrorResponse(c, fiber.StatusNotFound, "This shift is no longer available", "SHIFT_UNAVAILABLE", nil)
	}

	result, err := h.interestFlow.ShiftByCode(h.createRequestContext(c, "/s/:code"), code)
	if err != nil {
		if businessflow.IsShiftNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "This shift is no longer available", "SHIFT_UNAVAILABLE", nil)
		}
		log.Println("Shift code lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve shift", "LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Shift retrieved successfully", result)
}

// ExpressInterest records an anonymous caller's interest in a shift
// @Summary Express Interest
// @Description Record interest in an available shift after verifying the caller's phone. A shift that does not exist and a phone that does not verify produce the same response, so the endpoint leaks nothing about registered numbers.
// @Tags Public
// @Accept json
// @Produce json
// @Param code path string true "Shift code"
// @Param request body dto.ExpressInterestRequest true "Interest submission"
// @Success 200 {object} dto.APIResponse{data=dto.ExpressInterestResponse} "Interest recorded"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Shift unavailable"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /s/{code}/interest [post]
func (h *PublicHandler) ExpressInterest(c fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return h.ErrorResponse(c, fiber.StatusNotFound, "This shift is no longer available", "SHIFT_UNAVAILABLE", nil)
	}

	var req dto.ExpressInterestRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.interestFlow.ExpressInterest(h.createRequestContext(c, "/s/:code/interest"), code, &req, metadata)
	if err != nil {
		// A missing shift and an unverified phone collapse into one public
		// response so the endpoint cannot be used to probe registered numbers.
		if businessflow.IsShiftNotFound(err) || businessflow.IsNotEligible(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "This shift is no longer available", "SHIFT_UNAVAILABLE", nil)
		}
		log.Println("Express interest failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record interest", "INTEREST_FAILED", nil)
	}

	message := "Interest recorded"
	if result.AlreadyInterested {
		message = "Interest already recorded"
	}
	return h.SuccessResponse(c, fiber.StatusOK, message, result)
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *PublicHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
