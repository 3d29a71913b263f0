package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"carelink-backend/internal/converter"
	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"
	"carelink-backend/internal/service"
	"carelink-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type OrderUsecase interface {
	Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetByUser(ctx context.Context, userEmail string) ([]dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, actorEmail string, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderUsecase struct {
	log          *logrus.Logger
	transactor   database.Transactor
	orderRepo    repository.OrderRepository
	auditService service.AuditService
}

func NewOrderUsecase(
	log *logrus.Logger,
	transactor database.Transactor,
	orderRepo repository.OrderRepository,
	auditService service.AuditService,
) OrderUsecase {
	return &orderUsecase{
		log:          log,
		transactor:   transactor,
		orderRepo:    orderRepo,
		auditService: auditService,
	}
}

// Create stores a pending order. The total is always recomputed from the items.
func (u *orderUsecase) Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidInput, "items could not be encoded", err)
	}

	order := &entity.Order{
		UserEmail:     strings.TrimSpace(req.UserEmail),
		Total:         converter.OrderItemsTotal(req.Items),
		OrderStatus:   entity.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		Items:         datatypes.JSON(items),
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.orderRepo.Create(ctx, order); err != nil {
			u.log.Warnf("Failed to create order: %+v", err)
			return err
		}
		return u.auditService.LogCreate(ctx, order.UserEmail, entity.AuditActionOrderCreate, "order", order.ID.String(), map[string]interface{}{
			"total":      order.Total.StringFixed(2),
			"item_count": len(req.Items),
		})
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return converter.OrderToResponse(order), nil
}

func (u *orderUsecase) GetByUser(ctx context.Context, userEmail string) ([]dto.OrderResponse, error) {
	if strings.TrimSpace(userEmail) == "" {
		return nil, apperror.MissingFields("user_email")
	}

	orders, err := u.orderRepo.FindByUser(ctx, userEmail)
	if err != nil {
		u.log.Warnf("Failed to find orders: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.OrdersToResponses(orders), nil
}

func (u *orderUsecase) UpdateStatus(ctx context.Context, actorEmail string, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	status := entity.OrderStatus(req.Status)
	var order *entity.Order

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := u.orderRepo.FindByID(ctx, id)
		if err != nil {
			u.log.Warnf("Failed to find order: %+v", err)
			return err
		}
		if current == nil {
			return ErrOrderNotFound
		}
		previous := current.OrderStatus

		updated, err := u.orderRepo.UpdateStatus(ctx, id, status)
		if err != nil {
			u.log.Warnf("Failed to update order status: %+v", err)
			return err
		}
		if !updated {
			return ErrOrderNotFound
		}
		current.OrderStatus = status
		order = current

		return u.auditService.LogUpdate(ctx, actorEmail, entity.AuditActionOrderStatusUpdate, "order", id.String(),
			map[string]interface{}{"order_status": previous},
			map[string]interface{}{"order_status": status},
		)
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return converter.OrderToResponse(order), nil
}
