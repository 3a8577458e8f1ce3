package models

import "time"

// MessageTemplate holds SMS copy with named {placeholder} tokens. Recognized
// placeholders: position, area, date, start_time, end_time, location, bonus,
// link.
type MessageTemplate struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:100;not null;uniqueIndex:idx_message_templates_name" json:"name"`
	MessageType MessageType `gorm:"type:message_type;not null;index:idx_message_templates_type" json:"message_type"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	IsDefault   *bool       `gorm:"default:false" json:"is_default"`
	IsActive    *bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time   `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (MessageTemplate) TableName() string { return "message_templates" }

// MessageTemplateFilter provides filter fields for repository queries
type MessageTemplateFilter struct {
	ID          *uint
	Name        *string
	MessageType *MessageType
	IsDefault   *bool
	IsActive    *bool
}
