package repository

import (
	"context"

	"carelink-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Prescription, error)
	FindPending(ctx context.Context) ([]entity.Prescription, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) (bool, error)
}

type PresOrderRepository interface {
	Create(ctx context.Context, order *entity.PresOrder) error
}
