// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/shiftwave/shiftwave/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShiftInterestRepositoryImpl implements ShiftInterestRepository
type ShiftInterestRepositoryImpl struct {
	*BaseRepository[models.ShiftInterest, models.ShiftInterestFilter]
}

// NewShiftInterestRepository creates a new shift interest repository
func NewShiftInterestRepository(db *gorm.DB) ShiftInterestRepository {
	return &ShiftInterestRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ShiftInterest, models.ShiftInterestFilter](db, applyShiftInterestFilter),
	}
}

func applyShiftInterestFilter(db *gorm.DB, filter models.ShiftInterestFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.ShiftID != nil {
		db = db.Where("shift_id = ?", *filter.ShiftID)
	}
	if filter.EmployeeID != nil {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return db
}

// Insert performs an atomic check-then-insert on the (shift, employee) pair.
// The unique index plus ON CONFLICT DO NOTHING makes concurrent duplicate
// submissions race-safe: the loser sees inserted == false, never an error.
func (r *ShiftInterestRepositoryImpl) Insert(ctx context.Context, interest *models.ShiftInterest) (bool, error) {
	db := r.getDB(ctx)

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shift_id"}, {Name: "employee_id"}},
		DoNothing: true,
	}).Create(interest)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert shift interest: %w", res.Error)
	}

	return res.RowsAffected == 1, nil
}

// Exists checks whether the pair already has a ledger row.
func (r *ShiftInterestRepositoryImpl) Exists(ctx context.Context, shiftID, employeeID uint) (bool, error) {
	count, err := r.Count(ctx, models.ShiftInterestFilter{ShiftID: &shiftID, EmployeeID: &employeeID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByShift returns interest rows for a shift, oldest first, with the
// employee preloaded for the supervisor view.
func (r *ShiftInterestRepositoryImpl) ListByShift(ctx context.Context, shiftID uint) ([]*models.ShiftInterest, error) {
	db := r.getDB(ctx)

	var interests []*models.ShiftInterest
	err := db.Where("shift_id = ?", shiftID).
		Preload("Employee").Preload("Employee.Position").
		Order("created_at ASC").
		Find(&interests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interest for shift %d: %w", shiftID, err)
	}

	return interests, nil
}
