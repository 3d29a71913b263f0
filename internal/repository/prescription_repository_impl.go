package repository

import (
	"context"
	"errors"

	"carelink-backend/internal/domain/entity"
	domainRepo "carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type prescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *entity.Prescription) error {
	return database.Conn(ctx, r.db).Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Prescription, error) {
	var prescription entity.Prescription
	query := database.Conn(ctx, r.db)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindPending(ctx context.Context) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := database.Conn(ctx, r.db).
		Where("status = ?", entity.PrescriptionStatusPending).
		Order("created_at ASC").
		Find(&prescriptions).Error
	return prescriptions, err
}

func (r *prescriptionRepository) MarkProcessed(ctx context.Context, id uuid.UUID) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&entity.Prescription{}).
		Where("id = ? AND status = ?", id, entity.PrescriptionStatusPending).
		Update("status", entity.PrescriptionStatusProcessed)
	return result.RowsAffected == 1, result.Error
}

type presOrderRepository struct {
	db *gorm.DB
}

func NewPresOrderRepository(db *gorm.DB) domainRepo.PresOrderRepository {
	return &presOrderRepository{db: db}
}

func (r *presOrderRepository) Create(ctx context.Context, order *entity.PresOrder) error {
	return database.Conn(ctx, r.db).Create(order).Error
}
