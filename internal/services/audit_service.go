package services

import (
	"context"
	"encoding/json"

	"budgetbuddy/internal/logger"
	"budgetbuddy/internal/models"

	"gorm.io/gorm"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged and never returned, so a
// failed audit write does not fail the request that triggered it.
func (s *auditService) Log(ctx context.Context, entry AuditEntry) {
	log := logger.FromContext(ctx)

	var changesJSON string
	if entry.Changes != nil {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			log.Errorw("failed to marshal audit log changes", "error", err, "action", entry.Action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	record := &models.AuditLog{
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		IPAddress:    entry.IPAddress,
		Changes:      changesJSON,
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		log.Errorw("failed to create audit log entry",
			"error", err,
			"user_id", entry.UserID,
			"action", entry.Action,
			"resource_type", entry.ResourceType,
			"resource_id", entry.ResourceID,
		)
	}
}
