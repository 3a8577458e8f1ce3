// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"context"
	"log"

	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"github.com/shiftwave/shiftwave/utils"
)

// AssignmentFlow closes a shift on exactly one employee.
type AssignmentFlow interface {
	Assign(ctx context.Context, shiftID uint, req *dto.AssignShiftRequest, actor Actor, metadata *ClientMetadata) (*dto.ShiftDTO, error)
}

// AssignmentFlowImpl implements the assignment flow
type AssignmentFlowImpl struct {
	shiftRepo    repository.ShiftRepository
	employeeRepo repository.EmployeeRepository
	auditRepo    repository.AuditLogRepository
	notification NotificationFlow
}

// NewAssignmentFlow creates a new assignment flow instance
func NewAssignmentFlow(
	shiftRepo repository.ShiftRepository,
	employeeRepo repository.EmployeeRepository,
	auditRepo repository.AuditLogRepository,
	notification NotificationFlow,
) AssignmentFlow {
	return &AssignmentFlowImpl{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
		notification: notification,
	}
}

// Assign transitions the shift from available to claimed for the chosen
// employee. The transition is a compare-and-set on the available status, so
// two supervisors racing for the same shift produce exactly one winner; the
// loser gets ErrShiftConflict and the shift keeps its first assignee. The
// assignee need not have expressed interest.
//
// The optional confirmation text is best-effort: the assignment stands even
// if the send fails.
func (f *AssignmentFlowImpl) Assign(ctx context.Context, shiftID uint, req *dto.AssignShiftRequest, actor Actor, metadata *ClientMetadata) (*dto.ShiftDTO, error) {
	shift, err := f.shiftRepo.ByID(ctx, shiftID)
	if err != nil {
		return nil, NewBusinessError("ASSIGN_FAILED", "Failed to load shift", err)
	}
	if shift == nil {
		return nil, NewBusinessError("SHIFT_NOT_FOUND", "Shift not found", ErrShiftNotFound)
	}
	if !shift.IsAvailable() {
		return nil, NewBusinessError("SHIFT_NOT_AVAILABLE", "Shift is no longer available", ErrShiftNotAvailable)
	}

	employee, err := f.employeeRepo.ByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, NewBusinessError("ASSIGN_FAILED", "Failed to load employee", err)
	}
	if employee == nil {
		return nil, NewBusinessError("INVALID_EMPLOYEE", "Employee not found", ErrInvalidEmployee)
	}
	if !utils.IsTrue(employee.IsActive) {
		return nil, NewBusinessError("EMPLOYEE_INACTIVE", "Employee is inactive", ErrEmployeeInactive)
	}

	claimed, err := f.shiftRepo.ClaimAvailable(ctx, shift.ID, employee.ID)
	if err != nil {
		return nil, NewBusinessError("ASSIGN_FAILED", "Failed to claim shift", err)
	}
	if !claimed {
		// Lost the race: someone claimed, cancelled, or expired it between
		// our load and the update.
		return nil, NewBusinessError("SHIFT_CONFLICT", "Shift was claimed or closed concurrently", ErrShiftConflict)
	}

	shiftsFilled.Inc()

	change := models.StatusChange{Before: models.ShiftStatusAvailable, After: models.ShiftStatusClaimed}
	if err := writeAudit(ctx, f.auditRepo, actor, models.AuditActionShiftAssigned, &shift.ID, &shift.Code, change, true, nil); err != nil {
		log.Printf("audit write failed for shift %s assignment: %v", shift.Code, err)
	}

	shift.Status = models.ShiftStatusClaimed
	shift.AssignedEmployeeID = &employee.ID
	shift.AssignedEmployee = employee

	if req.Notify {
		confirmReq := &dto.NotifyShiftRequest{TargetEmployeeIDs: []uint{employee.ID}}
		if _, err := f.notification.Notify(ctx, shift.ID, confirmReq, models.MessageTypeShiftConfirmation, actor, metadata); err != nil {
			log.Printf("confirmation send failed for shift %s: %v", shift.Code, err)
		}
	}

	result := ToShiftDTO(*shift)
	return &result, nil
}
