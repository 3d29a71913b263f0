package usecase

import (
	"context"
	"testing"
	"time"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/internal/service"
	"carelink-backend/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purchase(email, plan string) *dto.PurchaseSubscriptionRequest {
	return &dto.PurchaseSubscriptionRequest{
		UserEmail: email,
		PlanName:  plan,
		PricePaid: decimal.RequireFromString("9.99"),
	}
}

func TestPurchase_EndDateFollowsFrequency(t *testing.T) {
	tests := []struct {
		name      string
		frequency string
		expected  time.Time
	}{
		{"monthly", "/month", day(2024, time.February, 29)},
		{"quarterly", "/3 month", day(2024, time.April, 30)},
		{"yearly", "/year", day(2025, time.January, 31)},
		{"unknown frequency bills yearly", "weekly", day(2025, time.January, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.addUser("a@example.com")
			env.store.plans["Custom"] = &entity.Plan{Name: "Custom", Frequency: tt.frequency, ReportUploadLimit: 5}
			uc := env.subscriptionUsecase(time.Date(2024, time.January, 31, 15, 4, 0, 0, time.UTC), stubLocker{})

			resp, err := uc.Purchase(context.Background(), purchase("a@example.com", "Custom"))
			require.NoError(t, err)
			assert.Equal(t, "2024-01-31", resp.StartDate)
			assert.Equal(t, tt.expected.Format(dateLayout), resp.EndDate)
			assert.False(t, resp.Renewed)
			assert.Equal(t, "active", resp.Status)
		})
	}
}

func TestPurchase_RenewsCurrentSubscriptionInPlace(t *testing.T) {
	env := newTestEnv()
	env.addUser("a@example.com")
	id := env.addSubscription("a@example.com", "Basic", day(2024, time.March, 20), 2)
	uc := env.subscriptionUsecase(day(2024, time.March, 1), stubLocker{})

	resp, err := uc.Purchase(context.Background(), purchase("a@example.com", "Premium"))
	require.NoError(t, err)

	assert.True(t, resp.Renewed)
	assert.Equal(t, id, resp.ID)
	assert.Len(t, env.store.subs, 1)

	sub := env.subscription(id)
	assert.Equal(t, "Premium", sub.PlanName)
	assert.Equal(t, 0, sub.ReportsUploaded)
	assert.Equal(t, day(2024, time.March, 1), sub.StartDate)
	assert.Equal(t, day(2025, time.March, 1), sub.EndDate)
	assert.Equal(t, []string{entity.AuditActionSubscriptionRenew}, env.store.auditActions())
}

func TestPurchase_ExpiredSubscriptionGetsNewRow(t *testing.T) {
	env := newTestEnv()
	env.addUser("a@example.com")
	oldID := env.addSubscription("a@example.com", "Basic", day(2024, time.February, 28), 3)
	uc := env.subscriptionUsecase(day(2024, time.March, 1), stubLocker{})

	resp, err := uc.Purchase(context.Background(), purchase("a@example.com", "Basic"))
	require.NoError(t, err)

	assert.False(t, resp.Renewed)
	assert.NotEqual(t, oldID, resp.ID)
	assert.Len(t, env.store.subs, 2)
	assert.Equal(t, entity.SubscriptionStatusExpired, env.subscription(oldID).Status)
	assert.Equal(t, entity.SubscriptionStatusActive, env.subscription(resp.ID).Status)
}

func TestPurchase_EndDateTodayIsStillCurrent(t *testing.T) {
	env := newTestEnv()
	env.addUser("a@example.com")
	id := env.addSubscription("a@example.com", "Basic", day(2024, time.March, 1), 1)
	uc := env.subscriptionUsecase(day(2024, time.March, 1), stubLocker{})

	resp, err := uc.Purchase(context.Background(), purchase("a@example.com", "Basic"))
	require.NoError(t, err)
	assert.True(t, resp.Renewed)
	assert.Equal(t, id, resp.ID)
}

func TestPurchase_Rejections(t *testing.T) {
	env := newTestEnv()
	env.addUser("a@example.com")
	uc := env.subscriptionUsecase(day(2024, time.March, 1), stubLocker{})
	ctx := context.Background()

	_, err := uc.Purchase(ctx, purchase("a@example.com", "Gold"))
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = uc.Purchase(ctx, purchase("ghost@example.com", "Basic"))
	assert.ErrorIs(t, err, ErrUserNotFound)

	req := purchase("a@example.com", "Basic")
	req.PricePaid = decimal.NewFromInt(-1)
	_, err = uc.Purchase(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = uc.Purchase(ctx, &dto.PurchaseSubscriptionRequest{UserEmail: "a@example.com"})
	assert.Equal(t, apperror.KindMissingFields, apperror.KindOf(err))

	assert.Empty(t, env.store.subs)
}

func TestPurchase_LockTimeoutIsConflict(t *testing.T) {
	env := newTestEnv()
	env.addUser("a@example.com")
	uc := env.subscriptionUsecase(day(2024, time.March, 1), stubLocker{err: service.ErrLockTimeout})

	_, err := uc.Purchase(context.Background(), purchase("a@example.com", "Basic"))
	assert.ErrorIs(t, err, ErrSubscriptionInProgress)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Empty(t, env.store.subs)
}

func TestPurchase_AuditFailureRollsBackRenewal(t *testing.T) {
	env := newTestEnv()
	env.addUser("a@example.com")
	id := env.addSubscription("a@example.com", "Basic", day(2024, time.March, 20), 2)
	env.store.failOn("audit.create")
	uc := env.subscriptionUsecase(day(2024, time.March, 1), stubLocker{})

	_, err := uc.Purchase(context.Background(), purchase("a@example.com", "Premium"))
	require.Error(t, err)

	sub := env.subscription(id)
	assert.Equal(t, "Basic", sub.PlanName)
	assert.Equal(t, 2, sub.ReportsUploaded)
}

func TestCheckEligibility(t *testing.T) {
	env := newTestEnv()
	uc := env.subscriptionUsecase(day(2024, time.March, 1), stubLocker{})
	ctx := context.Background()

	_, err := uc.CheckEligibility(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrActivePlanNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	id := env.addSubscription("a@example.com", "Basic", day(2024, time.March, 10), 1)
	resp, err := uc.CheckEligibility(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.RemainingReports)
	assert.Equal(t, "Basic", resp.PlanName)

	env.store.subs[id].ReportsUploaded = 3
	_, err = uc.CheckEligibility(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrReportLimitReached)

	// Checking never consumes quota.
	assert.Equal(t, 3, env.subscription(id).ReportsUploaded)
}

func TestGetPlanDetails(t *testing.T) {
	env := newTestEnv()
	uc := env.subscriptionUsecase(day(2024, time.March, 1), stubLocker{})

	resp, err := uc.GetPlanDetails(context.Background(), "Standard")
	require.NoError(t, err)
	assert.Equal(t, "Standard", resp.Name)

	_, err = uc.GetPlanDetails(context.Background(), "Nope")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
