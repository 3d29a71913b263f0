package repository

import (
	"context"

	"carelink-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Report, error)
	FindLatestByUser(ctx context.Context, userEmail string, limit int) ([]entity.Report, error)
	FindByDoctor(ctx context.Context, doctorEmail string) ([]entity.Report, error)
	// MarkReviewed moves a pending report to reviewed and reports whether it did.
	MarkReviewed(ctx context.Context, id uuid.UUID) (bool, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindByReportID(ctx context.Context, reportID uuid.UUID) (*entity.Feedback, error)
}
