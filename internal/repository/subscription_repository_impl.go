package repository

import (
	"context"
	"errors"
	"time"

	"carelink-backend/internal/domain/entity"
	domainRepo "carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) domainRepo.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) FindCurrent(ctx context.Context, userEmail string, today time.Time, forUpdate bool) (*entity.Subscription, error) {
	var sub entity.Subscription
	query := database.Conn(ctx, r.db).Preload("Plan")
	if forUpdate {
		// Locks only user_plans; the Plan preload is a separate statement.
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.
		Where("user_email = ? AND status = ? AND end_date >= ?", userEmail, entity.SubscriptionStatusActive, today).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	return database.Conn(ctx, r.db).Omit("Plan").Create(sub).Error
}

func (r *subscriptionRepository) Renew(ctx context.Context, sub *entity.Subscription) error {
	return database.Conn(ctx, r.db).Model(&entity.Subscription{}).
		Where("id = ?", sub.ID).
		Updates(map[string]interface{}{
			"plan_name":        sub.PlanName,
			"price_paid":       sub.PricePaid,
			"purchase_date":    sub.PurchaseDate,
			"start_date":       sub.StartDate,
			"end_date":         sub.EndDate,
			"status":           sub.Status,
			"reports_uploaded": sub.ReportsUploaded,
		}).Error
}

func (r *subscriptionRepository) ExpireStale(ctx context.Context, userEmail string, today time.Time) (int64, error) {
	result := database.Conn(ctx, r.db).Model(&entity.Subscription{}).
		Where("user_email = ? AND status = ? AND end_date < ?", userEmail, entity.SubscriptionStatusActive, today).
		Update("status", entity.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}

func (r *subscriptionRepository) IncrementReportsUploaded(ctx context.Context, id uuid.UUID, limit int) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&entity.Subscription{}).
		Where("id = ? AND reports_uploaded < ?", id, limit).
		Update("reports_uploaded", gorm.Expr("reports_uploaded + 1"))
	return result.RowsAffected == 1, result.Error
}
