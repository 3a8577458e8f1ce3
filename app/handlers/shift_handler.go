// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/shiftwave/shiftwave/app/dto"
	businessflow "github.com/shiftwave/shiftwave/business_flow"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/utils"
)

// ShiftHandlerInterface defines the contract for shift handlers
type ShiftHandlerInterface interface {
	CreateShift(c fiber.Ctx) error
	GetShift(c fiber.Ctx) error
	ListShifts(c fiber.Ctx) error
	ListUrgentShifts(c fiber.Ctx) error
	AssignShift(c fiber.Ctx) error
	CancelShift(c fiber.Ctx) error
	RepostShift(c fiber.Ctx) error
	NotifyShift(c fiber.Ctx) error
	ListInterest(c fiber.Ctx) error
	ListShiftMessages(c fiber.Ctx) error
	BulkCancelShifts(c fiber.Ctx) error
	BulkRepostShifts(c fiber.Ctx) error
	BulkNotifyShifts(c fiber.Ctx) error
}

// ShiftHandler handles shift-related HTTP requests
type ShiftHandler struct {
	shiftFlow        businessflow.ShiftFlow
	assignmentFlow   businessflow.AssignmentFlow
	notificationFlow businessflow.NotificationFlow
	interestFlow     businessflow.InterestFlow
	validator        *validator.Validate
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(
	shiftFlow businessflow.ShiftFlow,
	assignmentFlow businessflow.AssignmentFlow,
	notificationFlow businessflow.NotificationFlow,
	interestFlow businessflow.InterestFlow,
) *ShiftHandler {
	return &ShiftHandler{
		shiftFlow:        shiftFlow,
		assignmentFlow:   assignmentFlow,
		notificationFlow: notificationFlow,
		interestFlow:     interestFlow,
		validator:        validator.New(),
	}
}

func (h *ShiftHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ShiftHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateShift handles the shift creation process
// @Summary Create Shift
// @Description Post a new open shift and optionally broadcast it to eligible employees
// @Tags Shifts
// @Accept json
// @Produce json
// @Param request body dto.CreateShiftRequest true "Shift creation data"
// @Success 201 {object} dto.APIResponse{data=dto.ShiftDTO} "Shift created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts [post]
func (h *ShiftHandler) CreateShift(c fiber.Ctx) error {
	var req dto.CreateShiftRequest
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

	actor, ok := h.actorFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found in context", "MISSING_USER_ID", nil)
	}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.shiftFlow.Create(h.createRequestContext(c, "/api/v1/shifts"), &req, actor, metadata)
	if err != nil {
		if businessflow.IsPositionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Position not found", "POSITION_NOT_FOUND", nil)
		}
		if businessflow.IsAreaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Area not found", "AREA_NOT_FOUND", nil)
		}
		if businessflow.IsCodeCollision(err) {
			return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Could not allocate a shift code", "CODE_ALLOCATION_FAILED", nil)
		}

		log.Println("Shift creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Shift creation failed", "SHIFT_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Shift created successfully", result)
}

// GetShift returns one shift
// @Summary Get Shift
// @Description Retrieve a single shift by id
// @Tags Shifts
// @Produce json
// @Param id path int true "Shift ID"
// @Success 200 {object} dto.APIResponse{data=dto.ShiftDTO} "Shift retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Shift not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/{id} [get]
func (h *ShiftHandler) GetShift(c fiber.Ctx) error {
	shiftID, err := h.shiftIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shift id", "INVALID_SHIFT_ID", nil)
	}

	result, err := h.shiftFlow.Get(h.createRequestContext(c, "/api/v1/shifts/:id"), shiftID)
	if err != nil {
		if businessflow.IsShiftNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Shift not found", "SHIFT_NOT_FOUND", nil)
		}
		log.Println("Get shift failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve shift", "GET_SHIFT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Shift retrieved successfully", result)
}

// ListShifts returns shifts matching the query filters
// @Summary List Shifts
// @Description List shifts filtered by status, position, and area
// @Tags Shifts
// @Produce json
// @Param status query string false "Shift status (available, claimed, expired)"
// @Param position_id query int false "Position ID"
// @Param area_id query int false "Area ID"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=[]dto.ShiftDTO} "Shifts retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts [get]
func (h *ShiftHandler) ListShifts(c fiber.Ctx) error {
	var filter models.ShiftFilter

	if status := c.Query("status"); status != "" {
		s := models.ShiftStatus(status)
		if s != models.ShiftStatusAvailable && s != models.ShiftStatusClaimed && s != models.ShiftStatusExpired {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid status filter", "INVALID_STATUS", nil)
		}
		filter.Status = &s
	}
	if positionID := fiber.Query[uint](c, "position_id"); positionID != 0 {
		filter.PositionID = utils.ToPtr(positionID)
	}
	if areaID := fiber.Query[uint](c, "area_id"); areaID != 0 {
		filter.AreaID = utils.ToPtr(areaID)
	}

	limit := fiber.Query[int](c, "limit", 50)
	offset := fiber.Query[int](c, "offset", 0)

	result, err := h.shiftFlow.List(h.createRequestContext(c, "/api/v1/shifts"), filter, limit, offset)
	if err != nil {
		log.Println("List shifts failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list shifts", "LIST_SHIFTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Shifts retrieved successfully", result)
}

// ListUrgentShifts returns available shifts starting soon
// @Summary List Urgent Shifts
// @Description List available shifts starting within the urgent window
// @Tags Shifts
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ShiftDTO} "Urgent shifts retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/urgent [get]
func (h *ShiftHandler) ListUrgentShifts(c fiber.Ctx) error {
	result, err := h.shiftFlow.ListUrgent(h.createRequestContext(c, "/api/v1/shifts/urgent"))
	if err != nil {
		log.Println("List urgent shifts failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list urgent shifts", "LIST_URGENT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Urgent shifts retrieved successfully", result)
}

// AssignShift assigns an available shift to an employee
// @Summary Assign Shift
// @Description Assign an available shift to an employee; exactly one concurrent assignment wins
// @Tags Shifts
// @Accept json
// @Produce json
// @Param id path int true "Shift ID"
// @Param request body dto.AssignShiftRequest true "Assignment data"
// @Success 200 {object} dto.APIResponse{data=dto.ShiftDTO} "Shift assigned successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid employee"
// @Failure 404 {object} dto.APIResponse "Shift not found"
// @Failure 409 {object} dto.APIResponse "Shift no longer available"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/{id}/assign [post]
func (h *ShiftHandler) AssignShift(c fiber.Ctx) error {
	shiftID, err := h.shiftIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shift id", "INVALID_SHIFT_ID", nil)
	}

	var req dto.AssignShiftRequest
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

	actor, ok := h.actorFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found in context", "MISSING_USER_ID", nil)
	}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.assignmentFlow.Assign(h.createRequestContext(c, "/api/v1/shifts/:id/assign"), shiftID, &req, actor, metadata)
	if err != nil {
		if businessflow.IsShiftNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Shift not found", "SHIFT_NOT_FOUND", nil)
		}
		if businessflow.IsShiftNotAvailable(err) || businessflow.IsShiftConflict(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Shift is no longer available", "SHIFT_NOT_AVAILABLE", nil)
		}
		if businessflow.IsInvalidEmployee(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Employee not found", "INVALID_EMPLOYEE", nil)
		}
		if businessflow.IsEmployeeInactive(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Employee is inactive", "EMPLOYEE_INACTIVE", nil)
		}

		log.Println("Shift assignment failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Shift assignment failed", "ASSIGN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Shift assigned successfully", result)
}

// CancelShift retires an available shift
// @Summary Cancel Shift
// @Description Cancel an available shift; claimed shifts cannot be cancelled
// @Tags Shifts
// @Produce json
// @Param id path int true "Shift ID"
// @Success 200 {object} dto.APIResponse{data=dto.ShiftDTO} "Shift cancelled successfully"
// @Failure 404 {object} dto.APIResponse "Shift not found"
// @Failure 409 {object} dto.APIResponse "Shift not available"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/{id}/cancel [post]
func (h *ShiftHandler) CancelShift(c fiber.Ctx) error {
	shiftID, err := h.shiftIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shift id", "INVALID_SHIFT_ID", nil)
	}

	actor, ok := h.actorFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found in context", "MISSING_USER_ID", nil)
	}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.shiftFlow.Cancel(h.createRequestContext(c, "/api/v1/shifts/:id/cancel"), shiftID, actor, metadata)
	if err != nil {
		if businessflow.IsShiftNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Shift not found", "SHIFT_NOT_FOUND", nil)
		}
		if businessflow.IsShiftNotAvailable(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Shift is not available", "SHIFT_NOT_AVAILABLE", nil)
		}

		log.Println("Shift cancellation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Shift cancellation failed", "CANCEL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Shift cancelled successfully", result)
}

// RepostShift copies a retired shift into a fresh available one
// @Summary Repost Shift
// @Description Repost a retired shift under a new code with fresh notification metadata
// @Tags Shifts
// @Produce json
// @Param id path int true "Shift ID"
// @Success 201 {object} dto.APIResponse{data=dto.ShiftDTO} "Shift reposted successfully"
// @Failure 404 {object} dto.APIResponse "Shift not found"
// @Failure 409 {object} dto.APIResponse "Shift still available"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/{id}/repost [post]
func (h *ShiftHandler) RepostShift(c fiber.Ctx) error {
	shiftID, err := h.shiftIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shift id", "INVALID_SHIFT_ID", nil)
	}

	actor, ok := h.actorFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found in context", "MISSING_USER_ID", nil)
	}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.shiftFlow.Repost(h.createRequestContext(c, "/api/v1/shifts/:id/repost"), shiftID, actor, metadata)
	if err != nil {
		if businessflow.IsShiftNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Shift not found", "SHIFT_NOT_FOUND", nil)
		}
		if businessflow.IsShiftNotAvailable(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Shift is still open under its current code", "SHIFT_STILL_AVAILABLE", nil)
		}
		if businessflow.IsCodeCollision(err) {
			return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Could not allocate a shift code", "CODE_ALLOCATION_FAILED", nil)
		}

		log.Println("Shift repost failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Shift repost failed", "REPOST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Shift reposted successfully", result)
}

// NotifyShift broadcasts or re-broadcasts a shift to its recipients
// @Summary Notify Shift
// @Description Render the shift template and dispatch it to eligible employees or an explicit subset
// @Tags Shifts
// @Accept json
// @Produce json
// @Param id path int true "Shift ID"
// @Param request body dto.NotifyShiftRequest true "Notification options"
// @Success 200 {object} dto.APIResponse{data=dto.NotifyShiftResponse} "Notification dispatched"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Shift or template not found"
// @Failure 422 {object} dto.APIResponse "Template rendering failed or no eligible recipients"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Failure 503 {object} dto.APIResponse "SMS provider not configured"
// @Router /api/v1/shifts/{id}/notify [post]
func (h *ShiftHandler) NotifyShift(c fiber.Ctx) error {
	shiftID, err := h.shiftIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shift id", "INVALID_SHIFT_ID", nil)
	}

	var req dto.NotifyShiftRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
		}
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	actor, ok := h.actorFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found in context", "MISSING_USER_ID", nil)
	}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	messageType := models.MessageTypeShiftNotification
	if req.Reminder {
		messageType = models.MessageTypeShiftReminder
	}

	// Dispatch can take a while for large recipient sets.
	ctx := h.createRequestContextWithTimeout(c, "/api/v1/shifts/:id/notify", 5*time.Minute)
	result, err := h.notificationFlow.Notify(ctx, shiftID, &req, messageType, actor, metadata)
	if err != nil {
		if businessflow.IsShiftNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Shift not found", "SHIFT_NOT_FOUND", nil)
		}
		if businessflow.IsTemplateNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Message template not found", "TEMPLATE_NOT_FOUND", nil)
		}
		if businessflow.IsTemplateRender(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Template rendering failed", "TEMPLATE_RENDER_FAILED", nil)
		}
		if businessflow.IsInvalidEmployee(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Target employee not found", "INVALID_EMPLOYEE", nil)
		}
		if businessflow.IsNoRecipients(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "No eligible recipients to notify", "NO_RECIPIENTS", nil)
		}
		if businessflow.IsProviderNotConfig(err) {
			return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "SMS provider is not configured", "PROVIDER_NOT_CONFIGURED", nil)
		}

		log.Println("Shift notification failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Shift notification failed", "NOTIFY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Notification dispatched", result)
}

// ListInterest returns the interest ledger for a shift
// @Summary List Interest
// @Description List employees who expressed interest in a shift, oldest first
// @Tags Shifts
// @Produce json
// @Param id path int true "Shift ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.InterestDTO} "Interest retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Shift not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/{id}/interest [get]
func (h *ShiftHandler) ListInterest(c fiber.Ctx) error {
	shiftID, err := h.shiftIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shift id", "INVALID_SHIFT_ID", nil)
	}

	result, err := h.interestFlow.ListInterested(h.createRequestContext(c, "/api/v1/shifts/:id/interest"), shiftID)
	if err != nil {
		if businessflow.IsShiftNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Shift not found", "SHIFT_NOT_FOUND", nil)
		}
		log.Println("List interest failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list interest", "LIST_INTEREST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Interest retrieved successfully", result)
}

// ListShiftMessages returns the message traffic tied to a shift
// @Summary List Shift Messages
// @Description List outbound and inbound messages linked to a shift
// @Tags Shifts
// @Produce json
// @Param id path int true "Shift ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageDTO} "Messages retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Shift not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/{id}/messages [get]
func (h *ShiftHandler) ListShiftMessages(c fiber.Ctx) error {
	shiftID, err := h.shiftIDParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid shift id", "INVALID_SHIFT_ID", nil)
	}

	result, err := h.shiftFlow.Messages(h.createRequestContext(c, "/api/v1/shifts/:id/messages"), shiftID)
	if err != nil {
		if businessflow.IsShiftNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Shift not found", "SHIFT_NOT_FOUND", nil)
		}
		log.Println("List shift messages failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list messages", "LIST_MESSAGES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Messages retrieved successfully", result)
}

// BulkCancelShifts cancels a batch of shifts with per-shift outcomes
// @Summary Bulk Cancel Shifts
// @Description Cancel up to 100 shifts; each outcome is reported independently
// @Tags Shifts
// @Accept json
// @Produce json
// @Param request body dto.BulkShiftRequest true "Shift ids"
// @Success 200 {object} dto.APIResponse{data=[]dto.BulkShiftResult} "Bulk cancellation processed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/bulk/cancel [post]
func (h *ShiftHandler) BulkCancelShifts(c fiber.Ctx) error {
	return h.bulkOperation(c, "/api/v1/shifts/bulk/cancel", h.shiftFlow.CancelMany, "Bulk cancellation processed")
}

// BulkRepostShifts reposts a batch of shifts with per-shift outcomes
// @Summary Bulk Repost Shifts
// @Description Repost up to 100 retired shifts; each outcome is reported independently
// @Tags Shifts
// @Accept json
// @Produce json
// @Param request body dto.BulkShiftRequest true "Shift ids"
// @Success 200 {object} dto.APIResponse{data=[]dto.BulkShiftResult} "Bulk repost processed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/bulk/repost [post]
func (h *ShiftHandler) BulkRepostShifts(c fiber.Ctx) error {
	return h.bulkOperation(c, "/api/v1/shifts/bulk/repost", h.shiftFlow.RepostMany, "Bulk repost processed")
}

// BulkNotifyShifts re-broadcasts a batch of shifts with per-shift outcomes
// @Summary Bulk Notify Shifts
// @Description Re-broadcast up to 100 shifts with the default bulk template
// @Tags Shifts
// @Accept json
// @Produce json
// @Param request body dto.BulkShiftRequest true "Shift ids"
// @Success 200 {object} dto.APIResponse{data=[]dto.BulkShiftResult} "Bulk notification processed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/shifts/bulk/notify [post]
func (h *ShiftHandler) BulkNotifyShifts(c fiber.Ctx) error {
	return h.bulkOperation(c, "/api/v1/shifts/bulk/notify", h.shiftFlow.NotifyMany, "Bulk notification processed")
}

type bulkOperationFunc func(ctx context.Context, req *dto.BulkShiftRequest, actor businessflow.Actor, metadata *businessflow.ClientMetadata) []dto.BulkShiftResult

func (h *ShiftHandler) bulkOperation(c fiber.Ctx, endpoint string, op bulkOperationFunc, successMessage string) error {
	var req dto.BulkShiftRequest
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

	actor, ok := h.actorFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found in context", "MISSING_USER_ID", nil)
	}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	// Bulk batches fan out to many sends.
	ctx := h.createRequestContextWithTimeout(c, endpoint, 10*time.Minute)
	results := op(ctx, &req, actor, metadata)

	return h.SuccessResponse(c, fiber.StatusOK, successMessage, results)
}

// actorFromContext resolves the authenticated supervisor for auditing
func (h *ShiftHandler) actorFromContext(c fiber.Ctx) (businessflow.Actor, bool) {
	userID, ok := c.Locals("user_id").(uint)
	if !ok || userID == 0 {
		return businessflow.Actor{}, false
	}
	name, _ := c.Locals("user_name").(string)
	return businessflow.Actor{ID: userID, Name: name}, true
}

func (h *ShiftHandler) shiftIDParam(c fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *ShiftHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

// createRequestContextWithTimeout creates a context with custom timeout and request-scoped values
func (h *ShiftHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel) // Store cancel function for cleanup

	return ctx
}
