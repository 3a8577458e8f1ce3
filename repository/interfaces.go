// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/shiftwave/shiftwave/models"
)

// contextKey scopes the transaction handle carried through context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
}

// ShiftRepository defines operations for shifts
type ShiftRepository interface {
	Repository[models.Shift, models.ShiftFilter]
	ByAvailableCode(ctx context.Context, code string) (*models.Shift, error)
	CodeInUse(ctx context.Context, code string) (bool, error)
	ListAvailableDueBy(ctx context.Context, date time.Time) ([]*models.Shift, error)
	ClaimAvailable(ctx context.Context, shiftID, employeeID uint) (bool, error)
	ExpireAvailable(ctx context.Context, shiftID uint) (bool, error)
	UpdateNotificationMeta(ctx context.Context, shiftID uint, at time.Time, count int) error
}

// EmployeeRepository defines operations for employees
type EmployeeRepository interface {
	Repository[models.Employee, models.EmployeeFilter]
	ByNormalizedPhone(ctx context.Context, normalizedPhone string) (*models.Employee, error)
	ListNotifiable(ctx context.Context, positionID uint, areaID *uint) ([]*models.Employee, error)
}

// ShiftInterestRepository defines operations for the interest ledger
type ShiftInterestRepository interface {
	Repository[models.ShiftInterest, models.ShiftInterestFilter]
	Insert(ctx context.Context, interest *models.ShiftInterest) (inserted bool, err error)
	Exists(ctx context.Context, shiftID, employeeID uint) (bool, error)
	ListByShift(ctx context.Context, shiftID uint) ([]*models.ShiftInterest, error)
}

// MessageRepository defines operations for message records
type MessageRepository interface {
	Repository[models.Message, models.MessageFilter]
	ByProviderMessageID(ctx context.Context, providerMessageID string) (*models.Message, error)
	MarkSent(ctx context.Context, messageID uint, providerName, providerMessageID string) error
	MarkFailed(ctx context.Context, messageID uint, errCode, errMsg string) error
	ApplyDeliveryUpdate(ctx context.Context, messageID uint, status models.DeliveryStatus, providerTime time.Time, errCode, errMsg *string) (bool, error)
	ListByShift(ctx context.Context, shiftID uint) ([]*models.Message, error)
}

// MessageTemplateRepository defines operations for SMS templates
type MessageTemplateRepository interface {
	Repository[models.MessageTemplate, models.MessageTemplateFilter]
	ByName(ctx context.Context, name string) (*models.MessageTemplate, error)
	DefaultForType(ctx context.Context, messageType models.MessageType) (*models.MessageTemplate, error)
}

// RoleRepository defines operations for roles
type RoleRepository interface {
	Repository[models.Role, models.RoleFilter]
	ByName(ctx context.Context, name string) (*models.Role, error)
}

// UserRepository defines operations for supervisor accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
}

// PositionRepository defines operations for positions
type PositionRepository interface {
	Repository[models.Position, models.PositionFilter]
	ByName(ctx context.Context, name string) (*models.Position, error)
}

// AreaRepository defines operations for areas
type AreaRepository interface {
	Repository[models.Area, models.AreaFilter]
	ByName(ctx context.Context, name string) (*models.Area, error)
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByTarget(ctx context.Context, targetType string, targetID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
}
