// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/shiftwave/shiftwave/models"
	"gorm.io/gorm"
)

// EmployeeRepositoryImpl implements EmployeeRepository
type EmployeeRepositoryImpl struct {
	*BaseRepository[models.Employee, models.EmployeeFilter]
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &EmployeeRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Employee, models.EmployeeFilter](db, applyEmployeeFilter),
	}
}

func applyEmployeeFilter(db *gorm.DB, filter models.EmployeeFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.NormalizedPhone != nil {
		db = db.Where("normalized_phone = ?", *filter.NormalizedPhone)
	}
	if filter.PositionID != nil {
		db = db.Where("position_id = ?", *filter.PositionID)
	}
	if filter.AreaID != nil {
		db = db.Joins("JOIN employee_areas ON employee_areas.employee_id = employees.id").
			Where("employee_areas.area_id = ?", *filter.AreaID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.SMSOptIn != nil {
		db = db.Where("sms_opt_in = ?", *filter.SMSOptIn)
	}
	return db
}

// ByNormalizedPhone finds the employee holding the canonical phone key.
func (r *EmployeeRepositoryImpl) ByNormalizedPhone(ctx context.Context, normalizedPhone string) (*models.Employee, error) {
	filter := models.EmployeeFilter{NormalizedPhone: &normalizedPhone}
	employees, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee by phone: %w", err)
	}
	if len(employees) == 0 {
		return nil, nil
	}

	employee := employees[0]
	if err := r.getDB(ctx).Preload("Position").Preload("Areas").First(employee, employee.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load employee associations: %w", err)
	}

	return employee, nil
}

// ListNotifiable returns active, opted-in employees holding the position and,
// when areaID is non-nil, belonging to that area. Phone normalizability is
// re-checked by the eligibility flow; this narrows the candidate set in SQL.
func (r *EmployeeRepositoryImpl) ListNotifiable(ctx context.Context, positionID uint, areaID *uint) ([]*models.Employee, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.Employee{}).
		Where("position_id = ? AND is_active = ? AND sms_opt_in = ?", positionID, true, true)
	if areaID != nil {
		query = query.Joins("JOIN employee_areas ON employee_areas.employee_id = employees.id").
			Where("employee_areas.area_id = ?", *areaID)
	}

	var employees []*models.Employee
	err := query.Preload("Position").Preload("Areas").
		Order("employees.id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifiable employees: %w", err)
	}

	return employees, nil
}
