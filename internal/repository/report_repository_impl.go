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

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	return database.Conn(ctx, r.db).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Report, error) {
	var report entity.Report
	query := database.Conn(ctx, r.db)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindLatestByUser(ctx context.Context, userEmail string, limit int) ([]entity.Report, error) {
	var reports []entity.Report
	err := database.Conn(ctx, r.db).
		Omit("file_data").
		Where("user_email = ?", userEmail).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) FindByDoctor(ctx context.Context, doctorEmail string) ([]entity.Report, error) {
	var reports []entity.Report
	err := database.Conn(ctx, r.db).
		Omit("file_data").
		Where("doctor_email = ?", doctorEmail).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) MarkReviewed(ctx context.Context, id uuid.UUID) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&entity.Report{}).
		Where("id = ? AND status = ?", id, entity.ReportStatusPending).
		Update("status", entity.ReportStatusReviewed)
	return result.RowsAffected == 1, result.Error
}
