// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shiftwave/shiftwave/models"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	*BaseRepository[models.User, models.UserFilter]
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{
		BaseRepository: NewBaseRepository[models.User, models.UserFilter](db, applyUserFilter),
	}
}

func applyUserFilter(db *gorm.DB, filter models.UserFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.RoleID != nil {
		db = db.Where("role_id = ?", *filter.RoleID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByID retrieves a user with its role preloaded for permission checks.
func (r *UserRepositoryImpl) ByID(ctx context.Context, id uint) (*models.User, error) {
	db := r.getDB(ctx)

	var user models.User
	err := db.Preload("Role").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID %d: %w", id, err)
	}

	return &user, nil
}

// ByUUID retrieves a user by its public identifier with the role preloaded.
func (r *UserRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.User, error) {
	db := r.getDB(ctx)

	var user models.User
	err := db.Preload("Role").Where("uuid = ?", uuid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by UUID: %w", err)
	}

	return &user, nil
}
