// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shiftwave/shiftwave/models"
	"gorm.io/gorm"
)

// ShiftRepositoryImpl implements ShiftRepository
type ShiftRepositoryImpl struct {
	*BaseRepository[models.Shift, models.ShiftFilter]
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &ShiftRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Shift, models.ShiftFilter](db, applyShiftFilter),
	}
}

func applyShiftFilter(db *gorm.DB, filter models.ShiftFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.PositionID != nil {
		db = db.Where("position_id = ?", *filter.PositionID)
	}
	if filter.AreaID != nil {
		db = db.Where("area_id = ?", *filter.AreaID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.Code != nil {
		db = db.Where("code = ?", *filter.Code)
	}
	if filter.PostedByID != nil {
		db = db.Where("posted_by_id = ?", *filter.PostedByID)
	}
	if filter.NotifyAllAreas != nil {
		db = db.Where("notify_all_areas = ?", *filter.NotifyAllAreas)
	}
	if filter.DateAfter != nil {
		db = db.Where("shift_date >= ?", *filter.DateAfter)
	}
	if filter.DateBefore != nil {
		db = db.Where("shift_date <= ?", *filter.DateBefore)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return db
}

// ByID retrieves a shift with its position and area preloaded
func (r *ShiftRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Shift, error) {
	db := r.getDB(ctx)

	var shift models.Shift
	err := db.Preload("Position").Preload("Area").Preload("AssignedEmployee").First(&shift, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shift by ID %d: %w", id, err)
	}

	return &shift, nil
}

// ByAvailableCode resolves a public code against currently available shifts
// only. Codes on claimed or expired shifts are not public anymore.
func (r *ShiftRepositoryImpl) ByAvailableCode(ctx context.Context, code string) (*models.Shift, error) {
	db := r.getDB(ctx)

	var shift models.Shift
	err := db.Preload("Position").Preload("Area").
		Where("code = ? AND status = ?", code, models.ShiftStatusAvailable).
		First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shift by code: %w", err)
	}

	return &shift, nil
}

// CodeInUse reports whether a code is held by any currently available shift.
func (r *ShiftRepositoryImpl) CodeInUse(ctx context.Context, code string) (bool, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.Shift{}).
		Where("code = ? AND status = ?", code, models.ShiftStatusAvailable).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check code usage: %w", err)
	}

	return count > 0, nil
}

// ListAvailableDueBy returns available shifts dated on or before the given
// day, candidates for the expiry sweep. Start-time comparison happens in the
// flow since only it knows the deployment zone.
func (r *ShiftRepositoryImpl) ListAvailableDueBy(ctx context.Context, date time.Time) ([]*models.Shift, error) {
	db := r.getDB(ctx)

	var shifts []*models.Shift
	err := db.Where("status = ? AND shift_date <= ?", models.ShiftStatusAvailable, date).
		Order("shift_date ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list due shifts: %w", err)
	}

	return shifts, nil
}

// ClaimAvailable performs the available->claimed transition as a
// compare-and-set. The WHERE clause re-checks the precondition at write time,
// so of two concurrent claims exactly one observes RowsAffected == 1.
func (r *ShiftRepositoryImpl) ClaimAvailable(ctx context.Context, shiftID, employeeID uint) (bool, error) {
	db := r.getDB(ctx)

	res := db.Model(&models.Shift{}).
		Where("id = ? AND status = ?", shiftID, models.ShiftStatusAvailable).
		Updates(map[string]any{
			"status":               models.ShiftStatusClaimed,
			"assigned_employee_id": employeeID,
			"updated_at":           time.Now().UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to claim shift %d: %w", shiftID, res.Error)
	}

	return res.RowsAffected == 1, nil
}

// ExpireAvailable performs available->expired with the same compare-and-set
// guard. Used by both cancellation and the time-based sweep.
func (r *ShiftRepositoryImpl) ExpireAvailable(ctx context.Context, shiftID uint) (bool, error) {
	db := r.getDB(ctx)

	res := db.Model(&models.Shift{}).
		Where("id = ? AND status = ?", shiftID, models.ShiftStatusAvailable).
		Updates(map[string]any{
			"status":     models.ShiftStatusExpired,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to expire shift %d: %w", shiftID, res.Error)
	}

	return res.RowsAffected == 1, nil
}

// UpdateNotificationMeta records the outcome of a dispatch batch on the shift.
func (r *ShiftRepositoryImpl) UpdateNotificationMeta(ctx context.Context, shiftID uint, at time.Time, count int) error {
	db := r.getDB(ctx)

	err := db.Model(&models.Shift{}).
		Where("id = ?", shiftID).
		Updates(map[string]any{
			"last_notified_at":   at,
			"notification_count": count,
			"updated_at":         time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update notification metadata for shift %d: %w", shiftID, err)
	}

	return nil
}
