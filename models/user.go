package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a supervisor/admin account that operates the privileged API.
// Session management lives with the identity collaborator; this record exists
// so tokens can be resolved to a display name and a permission set.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_users_uuid" json:"uuid"`
	DisplayName string    `gorm:"size:255;not null" json:"display_name"`
	RoleID      uint      `gorm:"not null;index:idx_users_role_id" json:"role_id"`
	Role        *Role     `gorm:"foreignKey:RoleID;references:ID" json:"role,omitempty"`
	IsActive    *bool     `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserFilter provides filter fields for repository queries
type UserFilter struct {
	ID       *uint
	UUID     *string
	RoleID   *uint
	IsActive *bool
}
