package usecase

import (
	"context"
	"strings"
	"time"

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
)

const (
	latestReportsLimit = 5
	pendingResult      = "Pending Result"
)

type ReportUsecase interface {
	SubmitReport(ctx context.Context, req *dto.SubmitReportRequest) (*dto.SubmitReportResponse, error)
	GetLatestReports(ctx context.Context, userEmail string) ([]dto.ReportSummaryResponse, error)
	GetDoctorReports(ctx context.Context, doctorEmail string) ([]dto.DoctorReportResponse, error)
	GetReportFile(ctx context.Context, reportID string) (*dto.ReportFileResponse, error)
	FinalizeFeedback(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
	GetPrescriptionResult(ctx context.Context, reportID string) (*dto.PrescriptionResultResponse, error)
}

type reportUsecase struct {
	log              *logrus.Logger
	transactor       database.Transactor
	reportRepo       repository.ReportRepository
	feedbackRepo     repository.FeedbackRepository
	subscriptionRepo repository.SubscriptionRepository
	doctorRepo       repository.DoctorRepository
	auditService     service.AuditService
	now              func() time.Time
}

func NewReportUsecase(
	log *logrus.Logger,
	transactor database.Transactor,
	reportRepo repository.ReportRepository,
	feedbackRepo repository.FeedbackRepository,
	subscriptionRepo repository.SubscriptionRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) ReportUsecase {
	return &reportUsecase{
		log:              log,
		transactor:       transactor,
		reportRepo:       reportRepo,
		feedbackRepo:     feedbackRepo,
		subscriptionRepo: subscriptionRepo,
		doctorRepo:       doctorRepo,
		auditService:     auditService,
		now:              time.Now,
	}
}

// SubmitReport checks the caller's quota and consumes one slot in the same
// transaction that stores the report.
func (u *reportUsecase) SubmitReport(ctx context.Context, req *dto.SubmitReportRequest) (*dto.SubmitReportResponse, error) {
	userEmail := strings.TrimSpace(req.UserEmail)
	doctorEmail := strings.TrimSpace(req.DoctorEmail)
	if names := missing(
		"user_email", userEmail,
		"doctor_email", doctorEmail,
		"report_type", req.ReportType,
		"file_data", req.FileData,
	); len(names) > 0 {
		return nil, apperror.MissingFields(names...)
	}

	fileData, err := blob.Decode(req.FileData)
	if err != nil {
		return nil, ErrInvalidFileData
	}

	doctor, err := u.doctorRepo.FindByEmail(ctx, doctorEmail)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, apperror.Storage(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	report := &entity.Report{
		UserEmail:   userEmail,
		DoctorEmail: doctorEmail,
		ReportType:  req.ReportType,
		FileData:    fileData,
		Status:      entity.ReportStatusPending,
	}
	today := dateOf(u.now())
	remaining := 0

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		sub, err := u.subscriptionRepo.FindCurrent(ctx, userEmail, today, true)
		if err != nil {
			u.log.Warnf("Failed to find current subscription: %+v", err)
			return err
		}
		if sub == nil {
			return ErrNoActivePlan
		}
		if sub.RemainingReports() <= 0 {
			return ErrReportLimitReached
		}

		consumed, err := u.subscriptionRepo.IncrementReportsUploaded(ctx, sub.ID, sub.Plan.ReportUploadLimit)
		if err != nil {
			u.log.Warnf("Failed to consume report quota: %+v", err)
			return err
		}
		if !consumed {
			return ErrReportLimitReached
		}

		if err := u.reportRepo.Create(ctx, report); err != nil {
			if isForeignKeyError(err, "") {
				return ErrDoctorNotFound
			}
			u.log.Warnf("Failed to create report: %+v", err)
			return err
		}
		remaining = sub.RemainingReports() - 1

		return u.auditService.LogCreate(ctx, userEmail, entity.AuditActionReportSubmit, "report", report.ID.String(), map[string]interface{}{
			"doctor_email":    doctorEmail,
			"report_type":     report.ReportType,
			"subscription_id": sub.ID.String(),
		})
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	u.log.WithFields(logrus.Fields{
		"report_id": report.ID,
		"email":     userEmail,
		"doctor":    doctorEmail,
		"remaining": remaining,
	}).Info("Report submitted")

	return &dto.SubmitReportResponse{ID: report.ID, RemainingReports: remaining}, nil
}

func (u *reportUsecase) GetLatestReports(ctx context.Context, userEmail string) ([]dto.ReportSummaryResponse, error) {
	if strings.TrimSpace(userEmail) == "" {
		return nil, apperror.MissingFields("user_email")
	}

	reports, err := u.reportRepo.FindLatestByUser(ctx, userEmail, latestReportsLimit)
	if err != nil {
		u.log.Warnf("Failed to find reports: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.ReportsToSummaries(reports), nil
}

func (u *reportUsecase) GetDoctorReports(ctx context.Context, doctorEmail string) ([]dto.DoctorReportResponse, error) {
	if strings.TrimSpace(doctorEmail) == "" {
		return nil, apperror.MissingFields("doctor_email")
	}

	reports, err := u.reportRepo.FindByDoctor(ctx, doctorEmail)
	if err != nil {
		u.log.Warnf("Failed to find doctor reports: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.ReportsToDoctorResponses(reports), nil
}

func (u *reportUsecase) GetReportFile(ctx context.Context, reportID string) (*dto.ReportFileResponse, error) {
	id, err := uuid.Parse(reportID)
	if err != nil {
		return nil, ErrInvalidReportID
	}

	report, err := u.reportRepo.FindByID(ctx, id, false)
	if err != nil {
		u.log.Warnf("Failed to find report: %+v", err)
		return nil, apperror.Storage(err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return converter.ReportToFileResponse(report), nil
}

// FinalizeFeedback records the doctor's feedback and closes the report. A
// report takes feedback once; the second attempt is a conflict.
func (u *reportUsecase) FinalizeFeedback(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	doctorEmail := strings.TrimSpace(req.DoctorEmail)
	userEmail := strings.TrimSpace(req.UserEmail)
	if names := missing(
		"report_id", req.ReportID,
		"doctor_email", doctorEmail,
		"user_email", userEmail,
		"prescription_details", req.PrescriptionDetails,
	); len(names) > 0 {
		return nil, apperror.MissingFields(names...)
	}

	reportID, err := uuid.Parse(strings.TrimSpace(req.ReportID))
	if err != nil {
		return nil, ErrInvalidReportID
	}

	var image []byte
	if req.PrescriptionImage != nil {
		image, err = blob.Decode(*req.PrescriptionImage)
		if err != nil {
			return nil, ErrInvalidImage
		}
	}

	feedback := &entity.Feedback{
		ReportID:            reportID,
		DoctorEmail:         doctorEmail,
		UserEmail:           userEmail,
		PrescriptionDetails: req.PrescriptionDetails,
		PrescriptionImage:   image,
		Feedback:            req.Feedback,
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		report, err := u.reportRepo.FindByID(ctx, reportID, true)
		if err != nil {
			u.log.Warnf("Failed to find report: %+v", err)
			return err
		}
		if report == nil {
			return ErrReportNotFound
		}
		if !sameEmail(report.DoctorEmail, doctorEmail) || !sameEmail(report.UserEmail, userEmail) {
			return ErrReportNotOwned
		}
		feedback.DoctorEmail = report.DoctorEmail
		feedback.UserEmail = report.UserEmail
		if report.IsReviewed() {
			return ErrReportAlreadyReviewed
		}

		if err := u.feedbackRepo.Create(ctx, feedback); err != nil {
			if isDuplicateKeyError(err, "feedback_report_id") {
				return ErrReportAlreadyReviewed
			}
			u.log.Warnf("Failed to create feedback: %+v", err)
			return err
		}

		updated, err := u.reportRepo.MarkReviewed(ctx, reportID)
		if err != nil {
			u.log.Warnf("Failed to mark report reviewed: %+v", err)
			return err
		}
		if !updated {
			return ErrReportAlreadyReviewed
		}

		return u.auditService.LogUpdate(ctx, doctorEmail, entity.AuditActionReportFeedback, "report", reportID.String(),
			map[string]interface{}{"status": entity.ReportStatusPending},
			map[string]interface{}{"status": entity.ReportStatusReviewed, "feedback_id": feedback.ID.String()},
		)
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	u.log.WithFields(logrus.Fields{
		"report_id": reportID,
		"doctor":    doctorEmail,
	}).Info("Feedback finalized")

	return &dto.FeedbackResponse{ID: feedback.ID, ReportID: reportID}, nil
}

// GetPrescriptionResult returns the feedback for a report, or a pending
// marker while the doctor has not answered yet.
func (u *reportUsecase) GetPrescriptionResult(ctx context.Context, reportID string) (*dto.PrescriptionResultResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(reportID))
	if err != nil {
		return nil, ErrInvalidReportID
	}

	report, err := u.reportRepo.FindByID(ctx, id, false)
	if err != nil {
		u.log.Warnf("Failed to find report: %+v", err)
		return nil, apperror.Storage(err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if !report.IsReviewed() {
		return &dto.PrescriptionResultResponse{Message: pendingResult}, nil
	}

	feedback, err := u.feedbackRepo.FindByReportID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find feedback: %+v", err)
		return nil, apperror.Storage(err)
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	return converter.FeedbackToPrescriptionResult(feedback), nil
}
