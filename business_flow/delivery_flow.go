// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"github.com/shiftwave/shiftwave/utils"
)

// DeliveryFlow consumes asynchronous provider callbacks, independent of
// dispatch. It is the only writer of message delivery fields.
type DeliveryFlow interface {
	Reconcile(ctx context.Context, req *dto.DeliveryCallbackRequest) error
	IngestInbound(ctx context.Context, req *dto.InboundMessageRequest) error
}

// DeliveryFlowImpl implements the delivery flow
type DeliveryFlowImpl struct {
	messageRepo  repository.MessageRepository
	employeeRepo repository.EmployeeRepository
}

// NewDeliveryFlow creates a new delivery flow instance
func NewDeliveryFlow(messageRepo repository.MessageRepository, employeeRepo repository.EmployeeRepository) DeliveryFlow {
	return &DeliveryFlowImpl{
		messageRepo:  messageRepo,
		employeeRepo: employeeRepo,
	}
}

// Reconcile applies one provider status callback. Callbacks for unknown
// messages are logged and dropped, never surfaced to the provider as an
// error. Callbacks may arrive out of order: an update older than the stored
// provider timestamp is skipped, and terminal statuses are never overwritten
// by a later non-terminal one. The repository re-checks both guards in the
// UPDATE itself, so concurrent callbacks cannot regress state either.
func (f *DeliveryFlowImpl) Reconcile(ctx context.Context, req *dto.DeliveryCallbackRequest) error {
	providerTime, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return NewBusinessError("INVALID_CALLBACK", "Unparseable callback timestamp", err)
	}

	status := models.DeliveryStatus(req.Status)

	message, err := f.messageRepo.ByProviderMessageID(ctx, req.ProviderMessageID)
	if err != nil {
		return NewBusinessError("RECONCILE_FAILED", "Failed to look up message", err)
	}
	if message == nil {
		// Unknown or expired provider id is not a client error.
		log.Printf("delivery callback for unknown provider message %s (status %s), dropping", req.ProviderMessageID, status)
		return nil
	}

	applied, err := f.messageRepo.ApplyDeliveryUpdate(ctx, message.ID, status, providerTime.UTC(), req.ErrorCode, req.ErrorMessage)
	if err != nil {
		return NewBusinessError("RECONCILE_FAILED", "Failed to apply delivery update", err)
	}
	if !applied {
		log.Printf("delivery callback for message %d skipped (stale or terminal): %s at %s", message.ID, status, req.Timestamp)
	}

	return nil
}

// IngestInbound records an inbound text as a message row, linking it to the
// sender's employee record when the phone verifies.
func (f *DeliveryFlowImpl) IngestInbound(ctx context.Context, req *dto.InboundMessageRequest) error {
	fromPhone, err := utils.NormalizePhone(req.From)
	if err != nil {
		return NewBusinessError("INVALID_INBOUND", fmt.Sprintf("Unnormalizable sender phone %s", utils.MaskPhone(req.From)), err)
	}

	message := &models.Message{
		UUID:              uuid.New(),
		Direction:         models.MessageDirectionInbound,
		ToPhone:           req.To,
		FromPhone:         fromPhone,
		Body:              req.Body,
		SegmentCount:      utils.SegmentCount(req.Body),
		Status:            models.MessageStatusReceived,
		MessageType:       models.MessageTypeInbound,
		ProviderMessageID: &req.ProviderMessageID,
	}

	employee, err := f.employeeRepo.ByNormalizedPhone(ctx, fromPhone)
	if err != nil {
		return NewBusinessError("INGEST_FAILED", "Failed to look up sender", err)
	}
	if employee != nil {
		message.EmployeeID = &employee.ID
	}

	if err := f.messageRepo.Save(ctx, message); err != nil {
		return NewBusinessError("INGEST_FAILED", "Failed to record inbound message", err)
	}

	return nil
}
