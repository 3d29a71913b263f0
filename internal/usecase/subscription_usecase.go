package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"carelink-backend/internal/converter"
	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"
	"carelink-backend/internal/service"
	"carelink-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
)

const (
	subscriptionLockPrefix = "subscription:"
	subscriptionLockWait   = 5 * time.Second
)

type SubscriptionUsecase interface {
	GetAllPlans(ctx context.Context) ([]dto.PlanResponse, error)
	GetPlanDetails(ctx context.Context, name string) (*dto.PlanDetailResponse, error)
	Purchase(ctx context.Context, req *dto.PurchaseSubscriptionRequest) (*dto.SubscriptionResponse, error)
	CheckEligibility(ctx context.Context, email string) (*dto.PlanEligibilityResponse, error)
}

type subscriptionUsecase struct {
	log              *logrus.Logger
	transactor       database.Transactor
	planRepo         repository.PlanRepository
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	locker           service.Locker
	auditService     service.AuditService
	now              func() time.Time
}

func NewSubscriptionUsecase(
	log *logrus.Logger,
	transactor database.Transactor,
	planRepo repository.PlanRepository,
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	locker service.Locker,
	auditService service.AuditService,
) SubscriptionUsecase {
	return &subscriptionUsecase{
		log:              log,
		transactor:       transactor,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		locker:           locker,
		auditService:     auditService,
		now:              time.Now,
	}
}

func (u *subscriptionUsecase) GetAllPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	plans, err := u.planRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find plans: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.PlansToResponses(plans), nil
}

func (u *subscriptionUsecase) GetPlanDetails(ctx context.Context, name string) (*dto.PlanDetailResponse, error) {
	plan, err := u.planRepo.FindByName(ctx, name)
	if err != nil {
		u.log.Warnf("Failed to find plan: %+v", err)
		return nil, apperror.Storage(err)
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return converter.PlanToDetailResponse(plan), nil
}

// Purchase establishes the user's current subscription under the named plan.
// An existing current row is renewed in place; otherwise a new row is
// inserted. Purchases for the same user are serialized by the locker.
func (u *subscriptionUsecase) Purchase(ctx context.Context, req *dto.PurchaseSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	email := strings.TrimSpace(req.UserEmail)
	if names := missing("user_email", email, "plan_name", req.PlanName); len(names) > 0 {
		return nil, apperror.MissingFields(names...)
	}
	if req.PricePaid.IsNegative() {
		return nil, ErrInvalidPrice
	}

	plan, err := u.planRepo.FindByName(ctx, req.PlanName)
	if err != nil {
		u.log.Warnf("Failed to find plan: %+v", err)
		return nil, apperror.Storage(err)
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, apperror.Storage(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	lockCtx, cancel := context.WithTimeout(ctx, subscriptionLockWait)
	defer cancel()
	release, err := u.locker.Acquire(lockCtx, subscriptionLockPrefix+email)
	if err != nil {
		if errors.Is(err, service.ErrLockTimeout) {
			return nil, ErrSubscriptionInProgress
		}
		u.log.Warnf("Failed to acquire subscription lock: %+v", err)
		return nil, apperror.Storage(err)
	}
	defer release()

	today := dateOf(u.now())
	endDate := addMonths(today, plan.DurationMonths())

	var sub *entity.Subscription
	renewed := false

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.subscriptionRepo.ExpireStale(ctx, email, today); err != nil {
			u.log.Warnf("Failed to expire stale subscriptions: %+v", err)
			return err
		}

		current, err := u.subscriptionRepo.FindCurrent(ctx, email, today, true)
		if err != nil {
			u.log.Warnf("Failed to find current subscription: %+v", err)
			return err
		}

		if current != nil {
			previous := map[string]interface{}{
				"plan_name":        current.PlanName,
				"end_date":         current.EndDate.Format(dateLayout),
				"reports_uploaded": current.ReportsUploaded,
			}

			current.PlanName = plan.Name
			current.PricePaid = req.PricePaid
			current.PurchaseDate = today
			current.StartDate = today
			current.EndDate = endDate
			current.Status = entity.SubscriptionStatusActive
			current.ReportsUploaded = 0
			current.Plan = *plan

			if err := u.subscriptionRepo.Renew(ctx, current); err != nil {
				u.log.Warnf("Failed to renew subscription: %+v", err)
				return err
			}
			sub, renewed = current, true

			return u.auditService.LogUpdate(ctx, email, entity.AuditActionSubscriptionRenew, "subscription", sub.ID.String(), previous, map[string]interface{}{
				"plan_name": sub.PlanName,
				"end_date":  sub.EndDate.Format(dateLayout),
			})
		}

		sub = &entity.Subscription{
			UserEmail:       email,
			PlanName:        plan.Name,
			PricePaid:       req.PricePaid,
			PurchaseDate:    today,
			StartDate:       today,
			EndDate:         endDate,
			Status:          entity.SubscriptionStatusActive,
			ReportsUploaded: 0,
			Plan:            *plan,
		}
		if err := u.subscriptionRepo.Create(ctx, sub); err != nil {
			if isDuplicateKeyError(err, "") {
				return ErrSubscriptionInProgress
			}
			u.log.Warnf("Failed to create subscription: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, email, entity.AuditActionSubscriptionCreate, "subscription", sub.ID.String(), map[string]interface{}{
			"plan_name":  sub.PlanName,
			"price_paid": sub.PricePaid.String(),
			"end_date":   sub.EndDate.Format(dateLayout),
		})
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	u.log.WithFields(logrus.Fields{
		"subscription_id": sub.ID,
		"email":           email,
		"plan":            plan.Name,
		"renewed":         renewed,
	}).Info("Subscription purchased")

	return converter.SubscriptionToResponse(sub, renewed), nil
}

// CheckEligibility reports the remaining quota without consuming it.
func (u *subscriptionUsecase) CheckEligibility(ctx context.Context, email string) (*dto.PlanEligibilityResponse, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperror.MissingFields("email")
	}

	sub, err := u.subscriptionRepo.FindCurrent(ctx, email, dateOf(u.now()), false)
	if err != nil {
		u.log.Warnf("Failed to find current subscription: %+v", err)
		return nil, apperror.Storage(err)
	}
	if sub == nil {
		return nil, ErrActivePlanNotFound
	}
	if sub.RemainingReports() <= 0 {
		return nil, ErrReportLimitReached
	}

	return converter.SubscriptionToEligibility(sub), nil
}
