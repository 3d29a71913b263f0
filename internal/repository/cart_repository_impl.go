package repository

import (
	"context"

	"carelink-backend/internal/domain/entity"
	domainRepo "carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) domainRepo.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) AddOrIncrement(ctx context.Context, item *entity.CartItem) error {
	return database.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_email"}, {Name: "product_name"}, {Name: "product_size"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":      gorm.Expr("cart.quantity + EXCLUDED.quantity"),
			"product_price": gorm.Expr("EXCLUDED.product_price"),
			"updated_at":    gorm.Expr("NOW()"),
		}),
	}).Create(item).Error
}

func (r *cartRepository) FindByUser(ctx context.Context, userEmail string) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := database.Conn(ctx, r.db).
		Where("user_email = ?", userEmail).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *cartRepository) Delete(ctx context.Context, userEmail string, id uuid.UUID) (bool, error) {
	result := database.Conn(ctx, r.db).
		Where("id = ? AND user_email = ?", id, userEmail).
		Delete(&entity.CartItem{})
	return result.RowsAffected > 0, result.Error
}
