package converter

import (
	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/pkg/blob"
)

func ReportsToSummaries(reports []entity.Report) []dto.ReportSummaryResponse {
	responses := make([]dto.ReportSummaryResponse, len(reports))
	for i, r := range reports {
		responses[i] = dto.ReportSummaryResponse{
			ID:         r.ID,
			ReportType: r.ReportType,
			Status:     string(r.Status),
			CreatedAt:  r.CreatedAt.Format(dateLayout),
		}
	}
	return responses
}

func ReportsToDoctorResponses(reports []entity.Report) []dto.DoctorReportResponse {
	responses := make([]dto.DoctorReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = dto.DoctorReportResponse{
			ID:         r.ID,
			UserEmail:  r.UserEmail,
			ReportType: r.ReportType,
			Status:     string(r.Status),
			CreatedAt:  r.CreatedAt,
		}
	}
	return responses
}

func ReportToFileResponse(report *entity.Report) *dto.ReportFileResponse {
	if report == nil {
		return nil
	}

	return &dto.ReportFileResponse{
		ID:          report.ID,
		UserEmail:   report.UserEmail,
		DoctorEmail: report.DoctorEmail,
		ReportType:  report.ReportType,
		Status:      string(report.Status),
		FileData:    blob.Encode(report.FileData),
		CreatedAt:   report.CreatedAt,
	}
}

func FeedbackToPrescriptionResult(feedback *entity.Feedback) *dto.PrescriptionResultResponse {
	if feedback == nil {
		return nil
	}

	return &dto.PrescriptionResultResponse{
		PrescriptionDetails: feedback.PrescriptionDetails,
		PrescriptionImage:   blob.Encode(feedback.PrescriptionImage),
		Feedback:            feedback.Feedback,
	}
}
