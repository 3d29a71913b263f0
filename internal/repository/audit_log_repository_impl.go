package repository

import (
	"context"
	"errors"

	"carelink-backend/internal/domain/entity"
	domainRepo "carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"

	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return database.Conn(ctx, r.db).Create(log).Error
}

func (r *auditLogRepository) FindByActor(ctx context.Context, actorEmail string, limit, offset int) ([]entity.AuditLog, int64, error) {
	var logs []entity.AuditLog
	var total int64

	query := database.Conn(ctx, r.db).Model(&entity.AuditLog{}).Where("actor_email = ?", actorEmail)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := database.Conn(ctx, r.db).
		Where("actor_email = ?", actorEmail).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
