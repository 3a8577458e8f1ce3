// Package testing provides in-memory repository fakes and fixtures for flow tests
package testing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/utils"
)

// Fixtures provides helper methods for building test entities against a set
// of fakes. Entities are saved on creation so IDs are populated.
type Fixtures struct {
	Shifts    *FakeShiftRepository
	Employees *FakeEmployeeRepository
	Interests *FakeShiftInterestRepository
	Messages  *FakeMessageRepository
	Templates *FakeMessageTemplateRepository
	Audits    *FakeAuditLogRepository
	Positions *FakePositionRepository
	Areas     *FakeAreaRepository
	Roles     *FakeRoleRepository
}

// NewFixtures creates a fixture set backed by fresh fakes
func NewFixtures() *Fixtures {
	return &Fixtures{
		Shifts:    NewFakeShiftRepository(),
		Employees: NewFakeEmployeeRepository(),
		Interests: NewFakeShiftInterestRepository(),
		Messages:  NewFakeMessageRepository(),
		Templates: NewFakeMessageTemplateRepository(),
		Audits:    NewFakeAuditLogRepository(),
		Positions: NewFakePositionRepository(),
		Areas:     NewFakeAreaRepository(),
		Roles:     NewFakeRoleRepository(),
	}
}

// CreatePosition creates an active position
func (f *Fixtures) CreatePosition(name string) *models.Position {
	p := &models.Position{
		Name:      name,
		IsActive:  utils.ToPtr(true),
		CreatedAt: utils.UTCNow(),
	}
	_ = f.Positions.Save(context.Background(), p)
	return p
}

// CreateArea creates an active area
func (f *Fixtures) CreateArea(name string) *models.Area {
	a := &models.Area{
		Name:      name,
		IsActive:  utils.ToPtr(true),
		CreatedAt: utils.UTCNow(),
	}
	_ = f.Areas.Save(context.Background(), a)
	return a
}

// CreateEmployee creates an active, opted-in employee with a normalizable
// phone, assigned to the given position and areas.
func (f *Fixtures) CreateEmployee(phone string, positionID uint, areas ...models.Area) *models.Employee {
	normalized, _ := utils.NormalizePhone(phone)
	e := &models.Employee{
		UUID:            uuid.New(),
		FirstName:       "Test",
		LastName:        "Employee",
		Phone:           phone,
		NormalizedPhone: normalized,
		PositionID:      positionID,
		Areas:           areas,
		IsActive:        utils.ToPtr(true),
		SMSOptIn:        utils.ToPtr(true),
		CreatedAt:       utils.UTCNow(),
		UpdatedAt:       utils.UTCNow(),
	}
	_ = f.Employees.Save(context.Background(), e)
	return e
}

// CreateAvailableShift creates an available shift dated tomorrow
func (f *Fixtures) CreateAvailableShift(positionID, areaID uint, code string) *models.Shift {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	s := &models.Shift{
		UUID:         uuid.New(),
		PositionID:   positionID,
		AreaID:       areaID,
		Location:     "Main Building",
		ShiftDate:    time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:    "08:00",
		EndTime:      "16:00",
		PostedByID:   1,
		PostedByName: "Test Supervisor",
		Status:       models.ShiftStatusAvailable,
		Code:         code,
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
	_ = f.Shifts.Save(context.Background(), s)
	return s
}

// CreateDefaultTemplate creates the default template for a message type
func (f *Fixtures) CreateDefaultTemplate(messageType models.MessageType, content string) *models.MessageTemplate {
	t := &models.MessageTemplate{
		Name:        "default_" + string(messageType),
		MessageType: messageType,
		Content:     content,
		IsDefault:   utils.ToPtr(true),
		IsActive:    utils.ToPtr(true),
		CreatedAt:   utils.UTCNow(),
		UpdatedAt:   utils.UTCNow(),
	}
	_ = f.Templates.Save(context.Background(), t)
	return t
}
