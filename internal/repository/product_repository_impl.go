package repository

import (
	"context"
	"errors"

	"carelink-backend/internal/domain/entity"
	domainRepo "carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return database.Conn(ctx, r.db).Create(product).Error
}

func (r *productRepository) FindAll(ctx context.Context, prescription string) ([]entity.Product, error) {
	var products []entity.Product
	query := database.Conn(ctx, r.db)
	if prescription != "" {
		query = query.Where("prescription = ?", prescription)
	}
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return database.Conn(ctx, r.db).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := database.Conn(ctx, r.db).Where("id = ?", id).Delete(&entity.Product{})
	return result.RowsAffected > 0, result.Error
}
