package models

import "time"

// Area is an organizational unit (ward, department, site) shifts are posted
// against and employees belong to.
type Area struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_areas_name" json:"name"`
	IsActive  *bool     `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (Area) TableName() string { return "areas" }

// AreaFilter provides filter fields for repository queries
type AreaFilter struct {
	ID       *uint
	Name     *string
	IsActive *bool
}
