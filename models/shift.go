// Package models contains domain entities and business models for the shift fill engine
package models

import (
	"time"

	"github.com/google/uuid"
)

// ShiftStatus enumerates the shift lifecycle states
type ShiftStatus string

const (
	ShiftStatusAvailable ShiftStatus = "available"
	ShiftStatusClaimed   ShiftStatus = "claimed"
	ShiftStatusExpired   ShiftStatus = "expired"
)

// Shift is an open block of work offered for coverage. Status transitions are
// owned by the assignment and cancellation flows; notification metadata is
// owned by the dispatcher. A shift is never hard-deleted: cancellation lands
// in the expired state.
type Shift struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	UUID               uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_shifts_uuid" json:"uuid"`
	PositionID         uint        `gorm:"not null;index:idx_shifts_position_id" json:"position_id"`
	Position           *Position   `gorm:"foreignKey:PositionID;references:ID" json:"position,omitempty"`
	AreaID             uint        `gorm:"not null;index:idx_shifts_area_id" json:"area_id"`
	Area               *Area       `gorm:"foreignKey:AreaID;references:ID" json:"area,omitempty"`
	Location           string      `gorm:"size:255" json:"location"`
	ShiftDate          time.Time   `gorm:"type:date;not null;index:idx_shifts_date" json:"shift_date"`
	StartTime          string      `gorm:"size:5;not null" json:"start_time"` // "15:04" local wall clock
	EndTime            string      `gorm:"size:5;not null" json:"end_time"`
	Requirements       *string     `gorm:"type:text" json:"requirements,omitempty"`
	PostedByID         uint        `gorm:"not null" json:"posted_by_id"`
	PostedByName       string      `gorm:"size:255;not null" json:"posted_by_name"`
	Status             ShiftStatus `gorm:"type:shift_status;not null;default:'available';index:idx_shifts_status" json:"status"`
	AssignedEmployeeID *uint       `gorm:"index:idx_shifts_assigned_employee_id" json:"assigned_employee_id,omitempty"`
	AssignedEmployee   *Employee   `gorm:"foreignKey:AssignedEmployeeID;references:ID" json:"assigned_employee,omitempty"`
	Code               string      `gorm:"size:12;not null;index:idx_shifts_available_code,unique,where:status = 'available'" json:"code"`
	BonusAmount        *int64      `json:"bonus_amount,omitempty"`
	NotifyAllAreas     bool        `gorm:"not null;default:false" json:"notify_all_areas"`
	LastNotifiedAt     *time.Time  `json:"last_notified_at,omitempty"`
	NotificationCount  int         `gorm:"not null;default:0" json:"notification_count"`
	CreatedAt          time.Time   `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Shift) TableName() string { return "shifts" }

// StartsAt resolves the shift's start instant in the given zone.
func (s *Shift) StartsAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", s.StartTime, loc)
	if err != nil {
		return time.Time{}, err
	}
	d := s.ShiftDate
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

func (s *Shift) IsAvailable() bool { return s.Status == ShiftStatusAvailable }
func (s *Shift) IsClaimed() bool   { return s.Status == ShiftStatusClaimed }

// ShiftFilter provides filter fields for repository queries
type ShiftFilter struct {
	ID             *uint
	UUID           *string
	PositionID     *uint
	AreaID         *uint
	Status         *ShiftStatus
	Code           *string
	PostedByID     *uint
	NotifyAllAreas *bool
	DateAfter      *time.Time
	DateBefore     *time.Time
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
}
