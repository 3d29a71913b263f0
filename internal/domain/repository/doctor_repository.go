package repository

import (
	"context"

	"carelink-backend/internal/domain/entity"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByEmail(ctx context.Context, email string) (*entity.Doctor, error)
	FindByEmailWithReviews(ctx context.Context, email string) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	UpdateImage(ctx context.Context, email string, image []byte) (bool, error)
}
