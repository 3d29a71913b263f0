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
	"carelink-backend/pkg/blob"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type PrescriptionUsecase interface {
	Upload(ctx context.Context, req *dto.UploadPrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetPending(ctx context.Context) ([]dto.PrescriptionResponse, error)
	CreateOrder(ctx context.Context, actorEmail string, prescriptionID uuid.UUID, req *dto.CreatePresOrderRequest) (*dto.PresOrderResponse, error)
}

type prescriptionUsecase struct {
	log              *logrus.Logger
	transactor       database.Transactor
	prescriptionRepo repository.PrescriptionRepository
	presOrderRepo    repository.PresOrderRepository
	validator        service.ImageValidator
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	log *logrus.Logger,
	transactor database.Transactor,
	prescriptionRepo repository.PrescriptionRepository,
	presOrderRepo repository.PresOrderRepository,
	validator service.ImageValidator,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		log:              log,
		transactor:       transactor,
		prescriptionRepo: prescriptionRepo,
		presOrderRepo:    presOrderRepo,
		validator:        validator,
		auditService:     auditService,
	}
}

// Upload stores a prescription image once the validator finds text in it.
func (u *prescriptionUsecase) Upload(ctx context.Context, req *dto.UploadPrescriptionRequest) (*dto.PrescriptionResponse, error) {
	image, err := blob.Decode(req.Image)
	if err != nil {
		return nil, ErrInvalidImage
	}
	if len(image) == 0 {
		return nil, apperror.MissingFields("image")
	}

	readable, err := u.validator.ContainsText(ctx, image)
	if err != nil {
		u.log.Warnf("Failed to validate prescription image: %+v", err)
		return nil, apperror.External("image validation unavailable", err)
	}
	if !readable {
		return nil, ErrUnreadablePrescription
	}

	prescription := &entity.Prescription{
		UserEmail: strings.TrimSpace(req.UserEmail),
		Image:     image,
		Note:      req.Note,
		Status:    entity.PrescriptionStatusPending,
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.prescriptionRepo.Create(ctx, prescription); err != nil {
			if isForeignKeyError(err, "user_email") {
				return ErrUserNotFound
			}
			u.log.Warnf("Failed to create prescription: %+v", err)
			return err
		}
		return u.auditService.LogCreate(ctx, prescription.UserEmail, entity.AuditActionPrescriptionUpload, "prescription", prescription.ID.String(), map[string]interface{}{
			"size_bytes": len(image),
		})
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetPending(ctx context.Context) ([]dto.PrescriptionResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindPending(ctx)
	if err != nil {
		u.log.Warnf("Failed to find pending prescriptions: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.PrescriptionsToResponses(prescriptions), nil
}

// CreateOrder turns a pending prescription into a pharmacy order and marks
// it processed, both or neither.
func (u *prescriptionUsecase) CreateOrder(ctx context.Context, actorEmail string, prescriptionID uuid.UUID, req *dto.CreatePresOrderRequest) (*dto.PresOrderResponse, error) {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidInput, "items could not be encoded", err)
	}

	var order *entity.PresOrder

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		prescription, err := u.prescriptionRepo.FindByID(ctx, prescriptionID, true)
		if err != nil {
			u.log.Warnf("Failed to find prescription: %+v", err)
			return err
		}
		if prescription == nil {
			return ErrPrescriptionNotFound
		}
		if prescription.Status == entity.PrescriptionStatusProcessed {
			return ErrPrescriptionProcessed
		}

		order = &entity.PresOrder{
			PrescriptionID: prescription.ID,
			UserEmail:      prescription.UserEmail,
			Items:          datatypes.JSON(items),
			Total:          converter.OrderItemsTotal(req.Items),
			Status:         entity.OrderStatusPending,
		}
		if err := u.presOrderRepo.Create(ctx, order); err != nil {
			if isDuplicateKeyError(err, "pres_orders_prescription_id") {
				return ErrPrescriptionProcessed
			}
			u.log.Warnf("Failed to create prescription order: %+v", err)
			return err
		}

		updated, err := u.prescriptionRepo.MarkProcessed(ctx, prescription.ID)
		if err != nil {
			u.log.Warnf("Failed to mark prescription processed: %+v", err)
			return err
		}
		if !updated {
			return ErrPrescriptionProcessed
		}

		return u.auditService.LogUpdate(ctx, actorEmail, entity.AuditActionPrescriptionProcess, "prescription", prescription.ID.String(),
			map[string]interface{}{"status": entity.PrescriptionStatusPending},
			map[string]interface{}{"status": entity.PrescriptionStatusProcessed, "pres_order_id": order.ID.String()},
		)
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	u.log.WithFields(logrus.Fields{
		"prescription_id": prescriptionID,
		"pres_order_id":   order.ID,
	}).Info("Prescription order created")

	return converter.PresOrderToResponse(order), nil
}
