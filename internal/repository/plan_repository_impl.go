package repository

import (
	"context"
	"errors"

	"carelink-backend/internal/domain/entity"
	domainRepo "carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"

	"gorm.io/gorm"
)

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) domainRepo.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) FindAll(ctx context.Context) ([]entity.Plan, error) {
	var plans []entity.Plan
	err := database.Conn(ctx, r.db).Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *planRepository) FindByName(ctx context.Context, name string) (*entity.Plan, error) {
	var plan entity.Plan
	err := database.Conn(ctx, r.db).Where("name = ?", name).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}
