package repository

import (
	"context"

	"carelink-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// FindAll filters on the prescription requirement when it is not empty.
	FindAll(ctx context.Context, prescription string) ([]entity.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type CartRepository interface {
	// AddOrIncrement inserts the line or adds its quantity to the existing
	// (user, product, size) line in one statement.
	AddOrIncrement(ctx context.Context, item *entity.CartItem) error
	FindByUser(ctx context.Context, userEmail string) ([]entity.CartItem, error)
	Delete(ctx context.Context, userEmail string, id uuid.UUID) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByUser(ctx context.Context, userEmail string) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (bool, error)
}
