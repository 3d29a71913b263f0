package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type SubmitReportRequest struct {
	UserEmail   string `json:"user_email"`
	DoctorEmail string `json:"doctor_email"`
	ReportType  string `json:"report_type"`
	FileData    string `json:"file_data"`
}

type FeedbackRequest struct {
	ReportID            string  `json:"report_id"`
	DoctorEmail         string  `json:"doctor_email"`
	UserEmail           string  `json:"user_email"`
	PrescriptionDetails string  `json:"prescription_details"`
	PrescriptionImage   *string `json:"prescription_image"`
	Feedback            string  `json:"feedback"`
}

// Response DTOs

type SubmitReportResponse struct {
	ID               uuid.UUID `json:"id"`
	RemainingReports int       `json:"remaining_reports"`
}

type ReportSummaryResponse struct {
	ID         uuid.UUID `json:"id"`
	ReportType string    `json:"report_type"`
	Status     string    `json:"status"`
	CreatedAt  string    `json:"created_at"`
}

type FeedbackResponse struct {
	ID       uuid.UUID `json:"id"`
	ReportID uuid.UUID `json:"report_id"`
}

// PrescriptionResultResponse carries only Message while the report is pending.
type PrescriptionResultResponse struct {
	Message             string  `json:"message,omitempty"`
	PrescriptionDetails string  `json:"prescription_details,omitempty"`
	PrescriptionImage   *string `json:"prescription_image,omitempty"`
	Feedback            string  `json:"feedback,omitempty"`
}
