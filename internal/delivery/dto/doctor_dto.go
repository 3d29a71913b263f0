package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type DoctorSignupRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Specialty     string `json:"specialty" validate:"required"`
	LicenseNumber string `json:"license_number" validate:"required"`
	Password      string `json:"password" validate:"required,min=6"`
	Description   string `json:"description"`
}

// Response DTOs

type DoctorResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Specialty     string          `json:"specialty"`
	LicenseNumber string          `json:"license_number"`
	Description   string          `json:"description"`
	Rating        decimal.Decimal `json:"rating"`
	Image         *string         `json:"image"`
}

type DoctorDetailResponse struct {
	DoctorResponse
	Reviews []ReviewResponse `json:"reviews"`
}

type ReviewResponse struct {
	Username string `json:"username"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

type DoctorReportResponse struct {
	ID         uuid.UUID `json:"id"`
	UserEmail  string    `json:"user_email"`
	ReportType string    `json:"report_type"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReportFileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserEmail   string    `json:"user_email"`
	DoctorEmail string    `json:"doctor_email"`
	ReportType  string    `json:"report_type"`
	Status      string    `json:"status"`
	FileData    *string   `json:"file_data"`
	CreatedAt   time.Time `json:"created_at"`
}
