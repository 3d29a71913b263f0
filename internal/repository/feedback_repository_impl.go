package repository

import (
	"context"
	"errors"

	"carelink-backend/internal/domain/entity"
	domainRepo "carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) domainRepo.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	return database.Conn(ctx, r.db).Create(feedback).Error
}

func (r *feedbackRepository) FindByReportID(ctx context.Context, reportID uuid.UUID) (*entity.Feedback, error) {
	var feedback entity.Feedback
	err := database.Conn(ctx, r.db).Where("report_id = ?", reportID).First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}
