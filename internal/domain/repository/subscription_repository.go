package repository

import (
	"context"
	"time"

	"carelink-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type PlanRepository interface {
	FindAll(ctx context.Context) ([]entity.Plan, error)
	FindByName(ctx context.Context, name string) (*entity.Plan, error)
}

type SubscriptionRepository interface {
	// FindCurrent returns the user's active subscription whose end date is
	// on or after today, with its Plan loaded. forUpdate locks the row until
	// the surrounding transaction ends.
	FindCurrent(ctx context.Context, userEmail string, today time.Time, forUpdate bool) (*entity.Subscription, error)
	Create(ctx context.Context, sub *entity.Subscription) error
	// Renew overwrites plan, price, dates and counter of an existing row.
	Renew(ctx context.Context, sub *entity.Subscription) error
	// ExpireStale flips active rows that ended before today to expired.
	ExpireStale(ctx context.Context, userEmail string, today time.Time) (int64, error)
	// IncrementReportsUploaded bumps the counter only while it is below limit
	// and reports whether a row was updated.
	IncrementReportsUploaded(ctx context.Context, id uuid.UUID, limit int) (bool, error)
}
