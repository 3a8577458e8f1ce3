// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/shiftwave/shiftwave/models"
	"gorm.io/gorm"
)

// AuditLogRepositoryImpl implements AuditLogRepository
type AuditLogRepositoryImpl struct {
	*BaseRepository[models.AuditLog, models.AuditLogFilter]
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &AuditLogRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AuditLog, models.AuditLogFilter](db, applyAuditLogFilter),
	}
}

func applyAuditLogFilter(db *gorm.DB, filter models.AuditLogFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.ActorID != nil {
		db = db.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Action != nil {
		db = db.Where("action = ?", *filter.Action)
	}
	if filter.TargetType != nil {
		db = db.Where("target_type = ?", *filter.TargetType)
	}
	if filter.TargetID != nil {
		db = db.Where("target_id = ?", *filter.TargetID)
	}
	if filter.Success != nil {
		db = db.Where("success = ?", *filter.Success)
	}
	if filter.RequestID != nil {
		db = db.Where("request_id = ?", *filter.RequestID)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return db
}

// ListByTarget returns the audit trail of a single entity, newest first.
func (r *AuditLogRepositoryImpl) ListByTarget(ctx context.Context, targetType string, targetID uint, limit, offset int) ([]*models.AuditLog, error) {
	filter := models.AuditLogFilter{TargetType: &targetType, TargetID: &targetID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// ListByAction returns audit records of one action kind, newest first.
func (r *AuditLogRepositoryImpl) ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error) {
	filter := models.AuditLogFilter{Action: &action}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}
