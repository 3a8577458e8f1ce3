// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/utils"
	"gorm.io/gorm"
)

// MessageTemplateRepositoryImpl implements MessageTemplateRepository
type MessageTemplateRepositoryImpl struct {
	*BaseRepository[models.MessageTemplate, models.MessageTemplateFilter]
}

// NewMessageTemplateRepository creates a new message template repository
func NewMessageTemplateRepository(db *gorm.DB) MessageTemplateRepository {
	return &MessageTemplateRepositoryImpl{
		BaseRepository: NewBaseRepository[models.MessageTemplate, models.MessageTemplateFilter](db, applyMessageTemplateFilter),
	}
}

func applyMessageTemplateFilter(db *gorm.DB, filter models.MessageTemplateFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}
	if filter.MessageType != nil {
		db = db.Where("message_type = ?", *filter.MessageType)
	}
	if filter.IsDefault != nil {
		db = db.Where("is_default = ?", *filter.IsDefault)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// ByName retrieves an active template by its unique name.
func (r *MessageTemplateRepositoryImpl) ByName(ctx context.Context, name string) (*models.MessageTemplate, error) {
	templates, err := r.ByFilter(ctx, models.MessageTemplateFilter{Name: &name, IsActive: utils.ToPtr(true)}, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find template by name: %w", err)
	}
	if len(templates) == 0 {
		return nil, nil
	}
	return templates[0], nil
}

// DefaultForType retrieves the active default template for a message type.
func (r *MessageTemplateRepositoryImpl) DefaultForType(ctx context.Context, messageType models.MessageType) (*models.MessageTemplate, error) {
	filter := models.MessageTemplateFilter{
		MessageType: &messageType,
		IsDefault:   utils.ToPtr(true),
		IsActive:    utils.ToPtr(true),
	}
	templates, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find default template: %w", err)
	}
	if len(templates) == 0 {
		return nil, nil
	}
	return templates[0], nil
}
