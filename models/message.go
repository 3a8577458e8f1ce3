package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageDirection distinguishes outbound sends from inbound webhook ingests
type MessageDirection string

const (
	MessageDirectionOutbound MessageDirection = "outbound"
	MessageDirectionInbound  MessageDirection = "inbound"
)

// MessageStatus is the coarse lifecycle of a message record
type MessageStatus string

const (
	MessageStatusPending  MessageStatus = "pending"
	MessageStatusSent     MessageStatus = "sent"
	MessageStatusFailed   MessageStatus = "failed"
	MessageStatusReceived MessageStatus = "received"
)

// DeliveryStatus is the finer-grained provider-reported outcome, distinct
// from MessageStatus. Updated only by the delivery reconciler.
type DeliveryStatus string

const (
	DeliveryStatusQueued      DeliveryStatus = "queued"
	DeliveryStatusSent        DeliveryStatus = "sent"
	DeliveryStatusDelivered   DeliveryStatus = "delivered"
	DeliveryStatusUndelivered DeliveryStatus = "undelivered"
	DeliveryStatusFailed      DeliveryStatus = "failed"
	DeliveryStatusCanceled    DeliveryStatus = "canceled"
)

// IsTerminal reports whether the status can no longer change at the provider.
func (d DeliveryStatus) IsTerminal() bool {
	switch d {
	case DeliveryStatusDelivered, DeliveryStatusUndelivered, DeliveryStatusFailed, DeliveryStatusCanceled:
		return true
	}
	return false
}

// MessageType classifies why a message was sent
type MessageType string

const (
	MessageTypeShiftNotification MessageType = "shift_notification"
	MessageTypeShiftReminder     MessageType = "shift_reminder"
	MessageTypeShiftConfirmation MessageType = "shift_confirmation"
	MessageTypeShiftRejection    MessageType = "shift_rejection"
	MessageTypeBulk              MessageType = "bulk"
	MessageTypeInbound           MessageType = "inbound"
)

// Message is an individually trackable text. Created by the dispatcher
// (outbound) or webhook ingestion (inbound); status/error fields are mutated
// only by the delivery reconciler.
type Message struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	UUID              uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_messages_uuid" json:"uuid"`
	Direction         MessageDirection `gorm:"type:message_direction;not null" json:"direction"`
	ToPhone           string           `gorm:"size:20;not null;index:idx_messages_to_phone" json:"to_phone"`
	FromPhone         string           `gorm:"size:20;not null" json:"from_phone"`
	Body              string           `gorm:"type:text;not null" json:"body"`
	SegmentCount      int              `gorm:"not null;default:1" json:"segment_count"`
	Status            MessageStatus    `gorm:"type:message_status;not null;default:'pending';index:idx_messages_status" json:"status"`
	DeliveryStatus    *DeliveryStatus  `gorm:"type:delivery_status" json:"delivery_status,omitempty"`
	DeliveryUpdatedAt *time.Time       `json:"delivery_updated_at,omitempty"` // provider-reported timestamp, monotonic guard
	ProviderName      *string          `gorm:"size:50" json:"provider_name,omitempty"`
	ProviderMessageID *string          `gorm:"size:64;index:idx_messages_provider_message_id" json:"provider_message_id,omitempty"`
	ErrorCode         *string          `gorm:"size:40" json:"error_code,omitempty"`
	ErrorMessage      *string          `gorm:"type:text" json:"error_message,omitempty"`
	MessageType       MessageType      `gorm:"type:message_type;not null" json:"message_type"`
	ShiftID           *uint            `gorm:"index:idx_messages_shift_id" json:"shift_id,omitempty"`
	EmployeeID        *uint            `gorm:"index:idx_messages_employee_id" json:"employee_id,omitempty"`
	ThreadID          *uuid.UUID       `gorm:"type:uuid;index:idx_messages_thread_id" json:"thread_id,omitempty"`
	CreatedAt         time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_messages_created_at" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Message) TableName() string { return "messages" }

// MessageFilter provides filter fields for repository queries
type MessageFilter struct {
	ID                *uint
	Direction         *MessageDirection
	ToPhone           *string
	Status            *MessageStatus
	DeliveryStatus    *DeliveryStatus
	MessageType       *MessageType
	ShiftID           *uint
	EmployeeID        *uint
	ProviderMessageID *string
	ThreadID          *string
	CreatedAfter      *time.Time
	CreatedBefore     *time.Time
}
