package repository

import (
	"context"

	"carelink-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	UpdateImage(ctx context.Context, email string, image []byte) (bool, error)
}

type PersonalInfoRepository interface {
	Create(ctx context.Context, info *entity.PersonalInfo) error
	FindByEmail(ctx context.Context, email string) (*entity.PersonalInfo, error)
	Update(ctx context.Context, info *entity.PersonalInfo) (bool, error)
	FindPatientsByDoctor(ctx context.Context, doctorEmail string) ([]entity.PatientSummary, error)
}
