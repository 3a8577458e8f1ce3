package models

import "time"

// ShiftInterest records that a verified employee wants a shift. At most one
// row exists per (shift, employee) pair; rows are never mutated and are kept
// after the shift is claimed or expired as history.
type ShiftInterest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ShiftID    uint      `gorm:"not null;uniqueIndex:idx_shift_interests_pair,priority:1" json:"shift_id"`
	Shift      *Shift    `gorm:"foreignKey:ShiftID;references:ID" json:"shift,omitempty"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_shift_interests_pair,priority:2" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	CreatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_shift_interests_created_at" json:"created_at"`
}

func (ShiftInterest) TableName() string { return "shift_interests" }

// ShiftInterestFilter provides filter fields for repository queries
type ShiftInterestFilter struct {
	ID            *uint
	ShiftID       *uint
	EmployeeID    *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
