package service

import (
	"context"
	"encoding/json"

	"carelink-backend/internal/domain/entity"
	"carelink-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// AuditService appends audit rows. Callers pass the ctx of their transaction
// so the entry commits or rolls back with the change it describes.
type AuditService interface {
	LogCreate(ctx context.Context, actorEmail string, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, actorEmail string, action string, entityName string, entityID string, oldValue, newValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, actorEmail string, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, actorEmail, action, map[string]interface{}{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, actorEmail string, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, actorEmail, action, map[string]interface{}{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

func (s *auditService) write(ctx context.Context, actorEmail, action string, metadata map[string]interface{}) error {
	raw, err := json.Marshal(metadata)
	if err != nil {
		s.log.Warnf("Failed to encode audit metadata: %+v", err)
		return err
	}

	auditLog := &entity.AuditLog{
		ActorEmail: actorEmail,
		Action:     action,
		Metadata:   datatypes.JSON(raw),
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
