package models

import "time"

// Position is a job classification (RN, CNA, ...). A shift requires exactly
// one position and an employee holds exactly one.
type Position struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_positions_name" json:"name"`
	IsActive  *bool     `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (Position) TableName() string { return "positions" }

// PositionFilter provides filter fields for repository queries
type PositionFilter struct {
	ID       *uint
	Name     *string
	IsActive *bool
}
