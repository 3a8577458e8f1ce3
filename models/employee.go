package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a notifiable member of staff. NormalizedPhone is the E.164
// comparison key used for inbound identity verification; the raw Phone column
// keeps whatever format the roster import carried.
type Employee struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UUID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employees_uuid" json:"uuid"`
	FirstName       string    `gorm:"size:100;not null" json:"first_name"`
	LastName        string    `gorm:"size:100;not null" json:"last_name"`
	Phone           string    `gorm:"size:30;not null" json:"phone"`
	NormalizedPhone string    `gorm:"size:20;not null;index:idx_employees_normalized_phone" json:"normalized_phone"`
	PositionID      uint      `gorm:"not null;index:idx_employees_position_id" json:"position_id"`
	Position        *Position `gorm:"foreignKey:PositionID;references:ID" json:"position,omitempty"`
	Areas           []Area    `gorm:"many2many:employee_areas" json:"areas,omitempty"`
	IsActive        *bool     `gorm:"default:true;index:idx_employees_is_active" json:"is_active"`
	SMSOptIn        *bool     `gorm:"default:true" json:"sms_opt_in"`
	CreatedAt       time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }

// FullName returns the display name used in confirmations and audit records.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// InArea reports membership in the given area.
func (e *Employee) InArea(areaID uint) bool {
	for _, a := range e.Areas {
		if a.ID == areaID {
			return true
		}
	}
	return false
}

// EmployeeFilter provides filter fields for repository queries
type EmployeeFilter struct {
	ID              *uint
	UUID            *string
	NormalizedPhone *string
	PositionID      *uint
	AreaID          *uint
	IsActive        *bool
	SMSOptIn        *bool
}
