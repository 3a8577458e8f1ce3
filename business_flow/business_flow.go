// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"github.com/shiftwave/shiftwave/utils"
)

const RequestIDKey = utils.RequestIDKey

// Actor identifies the privileged caller of an operation for auditing.
type Actor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ClientMetadata holds client-related information for audit logging
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

const auditTargetShift = "shift"

// writeAudit appends one audit record; audit failures are logged by callers
// and never fail the enclosing operation.
func writeAudit(ctx context.Context, repo repository.AuditLogRepository, actor Actor, action string, targetID *uint, targetName *string, metadata any, success bool, errMsg *string) error {
	var payload json.RawMessage
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			payload = b
		}
	}

	audit := &models.AuditLog{
		ActorID:      utils.ToPtr(actor.ID),
		ActorName:    actor.Name,
		Action:       action,
		TargetType:   auditTargetShift,
		TargetID:     targetID,
		TargetName:   targetName,
		Metadata:     payload,
		Success:      utils.ToPtr(success),
		ErrorMessage: errMsg,
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		audit.RequestID = &requestID
	}

	return repo.Save(ctx, audit)
}

// ToShiftDTO converts a shift model to its supervisor-facing DTO
func ToShiftDTO(shift models.Shift) dto.ShiftDTO {
	d := dto.ShiftDTO{
		ID:                shift.ID,
		UUID:              shift.UUID.String(),
		Location:          shift.Location,
		ShiftDate:         shift.ShiftDate.Format("2006-01-02"),
		StartTime:         shift.StartTime,
		EndTime:           shift.EndTime,
		Requirements:      shift.Requirements,
		PostedBy:          shift.PostedByName,
		Status:            string(shift.Status),
		Code:              shift.Code,
		BonusAmount:       shift.BonusAmount,
		NotifyAllAreas:    shift.NotifyAllAreas,
		NotificationCount: shift.NotificationCount,
		CreatedAt:         shift.CreatedAt.Format(time.RFC3339),
	}
	if shift.Position != nil {
		d.Position = shift.Position.Name
	}
	if shift.Area != nil {
		d.Area = shift.Area.Name
	}
	if shift.AssignedEmployee != nil {
		d.AssignedEmployee = utils.ToPtr(shift.AssignedEmployee.FullName())
	}
	if shift.LastNotifiedAt != nil {
		d.LastNotifiedAt = utils.ToPtr(shift.LastNotifiedAt.Format(time.RFC3339))
	}
	return d
}

// ToPublicShiftDTO converts a shift into the anonymous code-lookup summary
func ToPublicShiftDTO(shift models.Shift) dto.PublicShiftDTO {
	d := dto.PublicShiftDTO{
		Code:        shift.Code,
		Location:    shift.Location,
		ShiftDate:   shift.ShiftDate.Format("2006-01-02"),
		StartTime:   shift.StartTime,
		EndTime:     shift.EndTime,
		BonusAmount: shift.BonusAmount,
		Status:      string(shift.Status),
	}
	if shift.Position != nil {
		d.Position = shift.Position.Name
	}
	if shift.Area != nil {
		d.Area = shift.Area.Name
	}
	return d
}

// ToInterestDTO converts a ledger row for the supervisor view
func ToInterestDTO(interest models.ShiftInterest) dto.InterestDTO {
	d := dto.InterestDTO{
		EmployeeID: interest.EmployeeID,
		CreatedAt:  interest.CreatedAt.Format(time.RFC3339),
	}
	if interest.Employee != nil {
		d.EmployeeName = interest.Employee.FullName()
		d.Phone = utils.MaskPhone(interest.Employee.NormalizedPhone)
		if interest.Employee.Position != nil {
			d.Position = interest.Employee.Position.Name
		}
	}
	return d
}

// ToMessageDTO converts a message record for the supervisor view
func ToMessageDTO(m models.Message) dto.MessageDTO {
	d := dto.MessageDTO{
		ID:           m.ID,
		UUID:         m.UUID.String(),
		Direction:    string(m.Direction),
		ToPhone:      utils.MaskPhone(m.ToPhone),
		Body:         m.Body,
		SegmentCount: m.SegmentCount,
		Status:       string(m.Status),
		MessageType:  string(m.MessageType),
		ShiftID:      m.ShiftID,
		ErrorCode:    m.ErrorCode,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
	if m.DeliveryStatus != nil {
		d.DeliveryStatus = utils.ToPtr(string(*m.DeliveryStatus))
	}
	return d
}
