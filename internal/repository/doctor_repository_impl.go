package repository

import (
	"context"
	"errors"

	"carelink-backend/internal/domain/entity"
	domainRepo "carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"

	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	return database.Conn(ctx, r.db).Create(doctor).Error
}

func (r *doctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := database.Conn(ctx, r.db).Where("email = ?", email).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByEmailWithReviews(ctx context.Context, email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := database.Conn(ctx, r.db).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Where("email = ?", email).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := database.Conn(ctx, r.db).Omit("password").Order("name ASC").Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepository) UpdateImage(ctx context.Context, email string, image []byte) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&entity.Doctor{}).
		Where("email = ?", email).
		Update("image", image)
	return result.RowsAffected > 0, result.Error
}
