package repository

import (
	"context"

	"carelink-backend/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindByActor(ctx context.Context, actorEmail string, limit, offset int) ([]entity.AuditLog, int64, error)
	FindByID(ctx context.Context, id int64) (*entity.AuditLog, error)
}
