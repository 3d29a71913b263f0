package usecase

import (
	"context"

	"carelink-backend/internal/converter"
	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/repository"
	"carelink-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
)

const (
	defaultAuditPageSize = 20
	maxAuditPageSize     = 100
)

type AuditLogUsecase interface {
	GetAuditLogs(ctx context.Context, actorEmail string, page, limit int) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, actorEmail string, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// GetAuditLogs pages through the entries the caller produced, newest first.
func (u *auditLogUsecase) GetAuditLogs(ctx context.Context, actorEmail string, page, limit int) (*dto.AuditLogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultAuditPageSize
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}

	logs, total, err := u.auditLogRepo.FindByActor(ctx, actorEmail, limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, apperror.Storage(err)
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// GetAuditLog hides entries that belong to other actors.
func (u *auditLogUsecase) GetAuditLog(ctx context.Context, actorEmail string, id int64) (*dto.AuditLogResponse, error) {
	log, err := u.auditLogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, apperror.Storage(err)
	}
	if log == nil || log.ActorEmail != actorEmail {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(log), nil
}
