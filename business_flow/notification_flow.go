// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/app/services"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"github.com/shiftwave/shiftwave/utils"
)

// NotificationFlow renders a template and dispatches it to a shift's
// recipients, recording one Message row per recipient.
type NotificationFlow interface {
	Notify(ctx context.Context, shiftID uint, req *dto.NotifyShiftRequest, messageType models.MessageType, actor Actor, metadata *ClientMetadata) (*dto.NotifyShiftResponse, error)
}

// NotificationConfig carries dispatch tuning from the application config.
type NotificationConfig struct {
	PublicBaseURL string
	SourceNumber  string
	RetryCount    int
	RetryBackoff  time.Duration
}

// NotificationFlowImpl implements the notification flow
type NotificationFlowImpl struct {
	shiftRepo    repository.ShiftRepository
	employeeRepo repository.EmployeeRepository
	templateRepo repository.MessageTemplateRepository
	messageRepo  repository.MessageRepository
	auditRepo    repository.AuditLogRepository
	eligibility  EligibilityFlow
	smsService   services.SMSService
	cfg          NotificationConfig
}

// NewNotificationFlow creates a new notification flow instance
func NewNotificationFlow(
	shiftRepo repository.ShiftRepository,
	employeeRepo repository.EmployeeRepository,
	templateRepo repository.MessageTemplateRepository,
	messageRepo repository.MessageRepository,
	auditRepo repository.AuditLogRepository,
	eligibility EligibilityFlow,
	smsService services.SMSService,
	cfg NotificationConfig,
) NotificationFlow {
	if cfg.RetryCount <= 0 {
		cfg.RetryCount = utils.DefaultSendRetryCount
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = utils.DefaultSendRetryBackoff
	}
	return &NotificationFlowImpl{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		templateRepo: templateRepo,
		messageRepo:  messageRepo,
		auditRepo:    auditRepo,
		eligibility:  eligibility,
		smsService:   smsService,
		cfg:          cfg,
	}
}

// Notify dispatches the rendered template to every recipient. A render
// failure aborts before any send; an individual recipient failure is recorded
// on its Message row and the batch continues. Shift notification metadata is
// written only after every recipient has been attempted, so a partially
// failed batch is still observable through NotificationCount.
func (f *NotificationFlowImpl) Notify(ctx context.Context, shiftID uint, req *dto.NotifyShiftRequest, messageType models.MessageType, actor Actor, metadata *ClientMetadata) (*dto.NotifyShiftResponse, error) {
	if req == nil {
		req = &dto.NotifyShiftRequest{}
	}

	if f.cfg.SourceNumber == "" {
		return nil, NewBusinessError("PROVIDER_NOT_CONFIGURED", "SMS provider is not configured", ErrProviderNotConfig)
	}

	shift, err := f.shiftRepo.ByID(ctx, shiftID)
	if err != nil {
		return nil, NewBusinessError("NOTIFY_FAILED", "Failed to load shift", err)
	}
	if shift == nil {
		return nil, NewBusinessError("SHIFT_NOT_FOUND", "Shift not found", ErrShiftNotFound)
	}

	body, err := f.renderForShift(ctx, shift, req.TemplateName, messageType)
	if err != nil {
		errMsg := err.Error()
		_ = writeAudit(ctx, f.auditRepo, actor, models.AuditActionShiftNotified, &shift.ID, &shift.Code, nil, false, &errMsg)
		return nil, NewBusinessError("TEMPLATE_RENDER_FAILED", "Template rendering failed", err)
	}

	recipients, err := f.resolveRecipients(ctx, shift, req.TargetEmployeeIDs)
	if err != nil {
		return nil, NewBusinessError("NOTIFY_FAILED", "Failed to resolve recipients", err)
	}
	if len(recipients) == 0 {
		errMsg := ErrNoRecipients.Error()
		_ = writeAudit(ctx, f.auditRepo, actor, models.AuditActionShiftNotified, &shift.ID, &shift.Code, nil, false, &errMsg)
		return nil, NewBusinessError("NO_RECIPIENTS", "No eligible recipients to notify", ErrNoRecipients)
	}

	sent, failed := 0, 0
	for _, employee := range recipients {
		if err := f.dispatchOne(ctx, shift, employee, body, messageType); err != nil {
			failed++
			log.Printf("dispatch to employee %d failed for shift %s: %v", employee.ID, shift.Code, err)
		} else {
			sent++
		}
	}

	// Attempted recipients, not confirmed deliveries: delivery confirmation
	// belongs to the reconciler.
	if isBroadcast(messageType) {
		if err := f.shiftRepo.UpdateNotificationMeta(ctx, shift.ID, utils.UTCNow(), len(recipients)); err != nil {
			return nil, NewBusinessError("NOTIFY_FAILED", "Failed to update shift notification metadata", err)
		}
	}

	summary := map[string]int{"recipients": len(recipients), "sent": sent, "failed": failed}
	if err := writeAudit(ctx, f.auditRepo, actor, models.AuditActionShiftNotified, &shift.ID, &shift.Code, summary, true, nil); err != nil {
		log.Printf("audit write failed for shift %s notify: %v", shift.Code, err)
	}

	return &dto.NotifyShiftResponse{
		ShiftID:        shift.ID,
		RecipientCount: len(recipients),
		SentCount:      sent,
		FailedCount:    failed,
	}, nil
}

// renderForShift resolves the template and substitutes the shift's values.
func (f *NotificationFlowImpl) renderForShift(ctx context.Context, shift *models.Shift, templateName *string, messageType models.MessageType) (string, error) {
	var template *models.MessageTemplate
	var err error

	if templateName != nil {
		template, err = f.templateRepo.ByName(ctx, *templateName)
	} else {
		template, err = f.templateRepo.DefaultForType(ctx, messageType)
	}
	if err != nil {
		return "", err
	}
	if template == nil {
		return "", ErrTemplateNotFound
	}

	return renderTemplate(template.Content, shiftPlaceholderValues(shift, f.cfg.PublicBaseURL))
}

// resolveRecipients uses the eligibility set unless an explicit override
// subset was given for targeted re-notification or a confirmation send.
func (f *NotificationFlowImpl) resolveRecipients(ctx context.Context, shift *models.Shift, targetIDs []uint) ([]*models.Employee, error) {
	if len(targetIDs) == 0 {
		return f.eligibility.EligibleEmployees(ctx, shift)
	}

	recipients := make([]*models.Employee, 0, len(targetIDs))
	for _, id := range targetIDs {
		employee, err := f.employeeRepo.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, fmt.Errorf("%w: employee %d", ErrInvalidEmployee, id)
		}
		recipients = append(recipients, employee)
	}
	return recipients, nil
}

// dispatchOne creates the Message row, hands the body to the provider within
// the retry budget, and records acceptance or failure on the row.
func (f *NotificationFlowImpl) dispatchOne(ctx context.Context, shift *models.Shift, employee *models.Employee, body string, messageType models.MessageType) error {
	toPhone, err := utils.NormalizePhone(employee.Phone)
	if err != nil {
		return fmt.Errorf("unnormalizable phone for employee %d: %w", employee.ID, err)
	}

	message := &models.Message{
		UUID:         uuid.New(),
		Direction:    models.MessageDirectionOutbound,
		ToPhone:      toPhone,
		FromPhone:    f.cfg.SourceNumber,
		Body:         body,
		SegmentCount: utils.SegmentCount(body),
		Status:       models.MessageStatusPending,
		MessageType:  messageType,
		ShiftID:      &shift.ID,
		EmployeeID:   &employee.ID,
	}
	if err := f.messageRepo.Save(ctx, message); err != nil {
		return err
	}

	providerID, sendErr := f.sendWithRetry(ctx, toPhone, body)
	if sendErr != nil {
		messagesFailed.WithLabelValues(string(messageType)).Inc()
		if err := f.messageRepo.MarkFailed(ctx, message.ID, "SEND_FAILED", sendErr.Error()); err != nil {
			return err
		}
		return sendErr
	}

	messagesDispatched.WithLabelValues(string(messageType)).Inc()
	return f.messageRepo.MarkSent(ctx, message.ID, f.smsService.Name(), providerID)
}

// sendWithRetry hands the message to the provider within a bounded retry
// budget with backoff. It never retries indefinitely: after the budget the
// error surfaces and the message is marked failed.
func (f *NotificationFlowImpl) sendWithRetry(ctx context.Context, toPhone, body string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < f.cfg.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.cfg.RetryBackoff * time.Duration(attempt)):
			}
		}

		providerID, err := f.smsService.Send(ctx, toPhone, body)
		if err == nil {
			return providerID, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("send failed after %d attempts: %w", f.cfg.RetryCount, lastErr)
}

// isBroadcast reports whether a message type updates the shift's
// notification metadata. Confirmations and rejections target one person and
// must not clobber the broadcast count.
func isBroadcast(messageType models.MessageType) bool {
	switch messageType {
	case models.MessageTypeShiftNotification, models.MessageTypeShiftReminder, models.MessageTypeBulk:
		return true
	}
	return false
}
