package models

import (
	"time"

	"github.com/lib/pq"
)

// Permission tags form a closed enumeration. Authorization is set membership
// against a role's Permissions column; never ad-hoc string matching elsewhere.
const (
	PermissionCreateShifts   = "shifts:create"
	PermissionAssignShifts   = "shifts:assign"
	PermissionCancelShifts   = "shifts:cancel"
	PermissionNotifyShifts   = "shifts:notify"
	PermissionBulkOperations = "shifts:bulk"
	PermissionViewInterest   = "shifts:view_interest"
	PermissionViewMessages   = "messages:view"
)

// AllPermissions lists every recognized capability tag.
var AllPermissions = []string{
	PermissionCreateShifts,
	PermissionAssignShifts,
	PermissionCancelShifts,
	PermissionNotifyShifts,
	PermissionBulkOperations,
	PermissionViewInterest,
	PermissionViewMessages,
}

// Role groups permission tags. A user's effective permission set is exactly
// its role's set; there are no per-user overrides. System roles cannot be
// deleted.
type Role struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex:idx_roles_name" json:"name"`
	Permissions pq.StringArray `gorm:"type:text[];not null" json:"permissions"`
	IsSystem    *bool          `gorm:"default:false" json:"is_system"`
	CreatedAt   time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

// HasPermission checks set membership for a capability tag.
func (r *Role) HasPermission(tag string) bool {
	for _, p := range r.Permissions {
		if p == tag {
			return true
		}
	}
	return false
}

// RoleFilter provides filter fields for repository queries
type RoleFilter struct {
	ID       *uint
	Name     *string
	IsSystem *bool
}
