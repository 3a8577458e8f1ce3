// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/shiftwave/shiftwave/models"
	"gorm.io/gorm"
)

// PositionRepositoryImpl implements PositionRepository
type PositionRepositoryImpl struct {
	*BaseRepository[models.Position, models.PositionFilter]
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &PositionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Position, models.PositionFilter](db, applyPositionFilter),
	}
}

func applyPositionFilter(db *gorm.DB, filter models.PositionFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByName retrieves a position by its unique name.
func (r *PositionRepositoryImpl) ByName(ctx context.Context, name string) (*models.Position, error) {
	positions, err := r.ByFilter(ctx, models.PositionFilter{Name: &name}, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find position by name: %w", err)
	}
	if len(positions) == 0 {
		return nil, nil
	}
	return positions[0], nil
}

// AreaRepositoryImpl implements AreaRepository
type AreaRepositoryImpl struct {
	*BaseRepository[models.Area, models.AreaFilter]
}

// NewAreaRepository creates a new area repository
func NewAreaRepository(db *gorm.DB) AreaRepository {
	return &AreaRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Area, models.AreaFilter](db, applyAreaFilter),
	}
}

func applyAreaFilter(db *gorm.DB, filter models.AreaFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByName retrieves an area by its unique name.
func (r *AreaRepositoryImpl) ByName(ctx context.Context, name string) (*models.Area, error) {
	areas, err := r.ByFilter(ctx, models.AreaFilter{Name: &name}, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find area by name: %w", err)
	}
	if len(areas) == 0 {
		return nil, nil
	}
	return areas[0], nil
}
