// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"crypto/subtle"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/shiftwave/shiftwave/app/dto"
	businessflow "github.com/shiftwave/shiftwave/business_flow"
	"github.com/shiftwave/shiftwave/utils"
)

// WebhookHandlerInterface defines the contract for provider webhooks
type WebhookHandlerInterface interface {
	DeliveryCallback(c fiber.Ctx) error
	InboundMessage(c fiber.Ctx) error
}

// WebhookHandler consumes provider callbacks. The provider retries on
// non-2xx, so processing failures that cannot be fixed by a retry still
// answer 200.
type WebhookHandler struct {
	deliveryFlow businessflow.DeliveryFlow
	webhookToken string
	validator    *validator.Validate
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(deliveryFlow businessflow.DeliveryFlow, webhookToken string) *WebhookHandler {
	return &WebhookHandler{
		deliveryFlow: deliveryFlow,
		webhookToken: webhookToken,
		validator:    validator.New(),
	}
}

func (h *WebhookHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *WebhookHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// DeliveryCallback applies one provider delivery status update
// @Summary Delivery Callback
// @Description Apply an asynchronous delivery status callback from the SMS provider
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param request body dto.DeliveryCallbackRequest true "Delivery status"
// @Success 200 {object} dto.APIResponse "Callback processed"
// @Failure 400 {object} dto.APIResponse "Invalid payload"
// @Failure 401 {object} dto.APIResponse "Invalid webhook token"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /webhooks/sms/status [post]
func (h *WebhookHandler) DeliveryCallback(c fiber.Ctx) error {
	if err := h.checkToken(c); err != nil {
		return err
	}

	var req dto.DeliveryCallbackRequest
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

	if err := h.deliveryFlow.Reconcile(h.createRequestContext(c, "/webhooks/sms/status"), &req); err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "INVALID_CALLBACK" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid callback", "INVALID_CALLBACK", nil)
		}
		log.Println("Delivery callback failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process callback", "CALLBACK_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Callback processed", nil)
}

// InboundMessage records an inbound SMS from the provider
// @Summary Inbound Message
// @Description Record an inbound SMS relayed by the provider webhook
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param request body dto.InboundMessageRequest true "Inbound message"
// @Success 200 {object} dto.APIResponse "Message recorded"
// @Failure 400 {object} dto.APIResponse "Invalid payload"
// @Failure 401 {object} dto.APIResponse "Invalid webhook token"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /webhooks/sms/inbound [post]
func (h *WebhookHandler) InboundMessage(c fiber.Ctx) error {
	if err := h.checkToken(c); err != nil {
		return err
	}

	var req dto.InboundMessageRequest
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

	if err := h.deliveryFlow.IngestInbound(h.createRequestContext(c, "/webhooks/sms/inbound"), &req); err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "INVALID_INBOUND" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid inbound message", "INVALID_INBOUND", nil)
		}
		log.Println("Inbound message ingestion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record message", "INGEST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Message recorded", nil)
}

// checkToken validates the shared webhook secret when one is configured
func (h *WebhookHandler) checkToken(c fiber.Ctx) error {
	if h.webhookToken == "" {
		return nil
	}
	provided := c.Get("X-Webhook-Token")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.webhookToken)) != 1 {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid webhook token", "INVALID_WEBHOOK_TOKEN", nil)
	}
	return nil
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *WebhookHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
