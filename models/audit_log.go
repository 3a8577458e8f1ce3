package models

import (
	"encoding/json"
	"time"
)

// AuditLog is an immutable record of a privileged action. Metadata carries a
// structured before/after payload for state transitions.
type AuditLog struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ActorID      *uint           `gorm:"index:idx_audit_actor_id" json:"actor_id,omitempty"`
	ActorName    string          `gorm:"size:255;not null" json:"actor_name"`
	Action       string          `gorm:"type:audit_action_enum;not null;index:idx_audit_action" json:"action"`
	TargetType   string          `gorm:"size:50;not null;index:idx_audit_target" json:"target_type"`
	TargetID     *uint           `gorm:"index:idx_audit_target" json:"target_id,omitempty"`
	TargetName   *string         `gorm:"size:255" json:"target_name,omitempty"`
	Metadata     json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	RequestID    *string         `gorm:"size:255;index:idx_audit_request_id" json:"request_id,omitempty"`
	Success      *bool           `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_created_at" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_log" }

// Audit action constants
const (
	AuditActionShiftCreated     = "shift_created"
	AuditActionShiftAssigned    = "shift_assigned"
	AuditActionShiftCancelled   = "shift_cancelled"
	AuditActionShiftExpired     = "shift_expired"
	AuditActionShiftReposted    = "shift_reposted"
	AuditActionShiftNotified    = "shift_notified"
	AuditActionBulkCancel       = "bulk_cancel"
	AuditActionBulkRepost       = "bulk_repost"
	AuditActionBulkNotify       = "bulk_notify"
	AuditActionInterestRecorded = "interest_recorded"
	AuditActionInterestRejected = "interest_rejected"
)

// StatusChange is the before/after payload stored in Metadata for shift
// transitions.
type StatusChange struct {
	Before ShiftStatus `json:"before"`
	After  ShiftStatus `json:"after"`
}

func (a *AuditLog) IsFailed() bool {
	return a.Success != nil && !*a.Success
}

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	ID            *uint
	ActorID       *uint
	Action        *string
	TargetType    *string
	TargetID      *uint
	Success       *bool
	RequestID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
