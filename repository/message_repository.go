// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwave/shiftwave/models"
	"gorm.io/gorm"
)

// MessageRepositoryImpl implements MessageRepository
type MessageRepositoryImpl struct {
	*BaseRepository[models.Message, models.MessageFilter]
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Message, models.MessageFilter](db, applyMessageFilter),
	}
}

func applyMessageFilter(db *gorm.DB, filter models.MessageFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Direction != nil {
		db = db.Where("direction = ?", *filter.Direction)
	}
	if filter.ToPhone != nil {
		db = db.Where("to_phone = ?", *filter.ToPhone)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.DeliveryStatus != nil {
		db = db.Where("delivery_status = ?", *filter.DeliveryStatus)
	}
	if filter.MessageType != nil {
		db = db.Where("message_type = ?", *filter.MessageType)
	}
	if filter.ShiftID != nil {
		db = db.Where("shift_id = ?", *filter.ShiftID)
	}
	if filter.EmployeeID != nil {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.ProviderMessageID != nil {
		db = db.Where("provider_message_id = ?", *filter.ProviderMessageID)
	}
	if filter.ThreadID != nil {
		db = db.Where("thread_id = ?", *filter.ThreadID)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return db
}

// ByProviderMessageID correlates an asynchronous delivery callback with its
// message record. Returns nil when no record matches.
func (r *MessageRepositoryImpl) ByProviderMessageID(ctx context.Context, providerMessageID string) (*models.Message, error) {
	messages, err := r.ByFilter(ctx, models.MessageFilter{ProviderMessageID: &providerMessageID}, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find message by provider ID: %w", err)
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return messages[0], nil
}

// MarkSent records provider acceptance of an outbound message.
func (r *MessageRepositoryImpl) MarkSent(ctx context.Context, messageID uint, providerName, providerMessageID string) error {
	db := r.getDB(ctx)

	queued := models.DeliveryStatusQueued
	err := db.Model(&models.Message{}).
		Where("id = ?", messageID).
		Updates(map[string]any{
			"status":              models.MessageStatusSent,
			"delivery_status":     queued,
			"provider_name":       providerName,
			"provider_message_id": providerMessageID,
			"updated_at":          time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark message %d sent: %w", messageID, err)
	}

	return nil
}

// MarkFailed records an exhausted send attempt on an outbound message.
func (r *MessageRepositoryImpl) MarkFailed(ctx context.Context, messageID uint, errCode, errMsg string) error {
	db := r.getDB(ctx)

	err := db.Model(&models.Message{}).
		Where("id = ?", messageID).
		Updates(map[string]any{
			"status":        models.MessageStatusFailed,
			"error_code":    errCode,
			"error_message": errMsg,
			"updated_at":    time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark message %d failed: %w", messageID, err)
	}

	return nil
}

// ApplyDeliveryUpdate applies a provider status callback. The WHERE clause
// re-checks the monotonicity and terminal-state guards at write time, so
// out-of-order or concurrent callbacks can never regress a status. Returns
// whether the update was applied.
func (r *MessageRepositoryImpl) ApplyDeliveryUpdate(ctx context.Context, messageID uint, status models.DeliveryStatus, providerTime time.Time, errCode, errMsg *string) (bool, error) {
	db := r.getDB(ctx)

	terminal := []models.DeliveryStatus{
		models.DeliveryStatusDelivered,
		models.DeliveryStatusUndelivered,
		models.DeliveryStatusFailed,
		models.DeliveryStatusCanceled,
	}

	updates := map[string]any{
		"delivery_status":     status,
		"delivery_updated_at": providerTime,
		"updated_at":          time.Now().UTC(),
	}
	if errCode != nil {
		updates["error_code"] = *errCode
	}
	if errMsg != nil {
		updates["error_message"] = *errMsg
	}

	res := db.Model(&models.Message{}).
		Where("id = ?", messageID).
		Where("delivery_updated_at IS NULL OR delivery_updated_at <= ?", providerTime).
		Where("delivery_status IS NULL OR delivery_status NOT IN ?", terminal).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("failed to apply delivery update to message %d: %w", messageID, res.Error)
	}

	return res.RowsAffected == 1, nil
}

// ListByShift returns all messages linked to a shift, newest first.
func (r *MessageRepositoryImpl) ListByShift(ctx context.Context, shiftID uint) ([]*models.Message, error) {
	return r.ByFilter(ctx, models.MessageFilter{ShiftID: &shiftID}, "created_at DESC", 0, 0)
}
