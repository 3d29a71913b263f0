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

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return database.Conn(ctx, r.db).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUser(ctx context.Context, userEmail string) ([]entity.Order, error) {
	var orders []entity.Order
	err := database.Conn(ctx, r.db).
		Where("user_email = ?", userEmail).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("order_status", status)
	return result.RowsAffected > 0, result.Error
}
