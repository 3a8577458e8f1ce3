// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/shiftwave/shiftwave/models"
	"gorm.io/gorm"
)

// RoleRepositoryImpl implements RoleRepository
type RoleRepositoryImpl struct {
	*BaseRepository[models.Role, models.RoleFilter]
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &RoleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Role, models.RoleFilter](db, applyRoleFilter),
	}
}

func applyRoleFilter(db *gorm.DB, filter models.RoleFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.IsSystem != nil {
		db = db.Where("is_system = ?", *filter.IsSystem)
	}
	return db
}

// ByName retrieves a role by its unique name.
func (r *RoleRepositoryImpl) ByName(ctx context.Context, name string) (*models.Role, error) {
	roles, err := r.ByFilter(ctx, models.RoleFilter{Name: &name}, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find role by name: %w", err)
	}
	if len(roles) == 0 {
		return nil, nil
	}
	return roles[0], nil
}
