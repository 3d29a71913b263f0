package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type PurchaseSubscriptionRequest struct {
	UserEmail string          `json:"user_email" validate:"required,email"`
	PlanName  string          `json:"plan_name" validate:"required"`
	PricePaid decimal.Decimal `json:"price_paid"`
}

type CheckPlanRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Response DTOs

type PlanResponse struct {
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Frequency         string          `json:"frequency"`
	ReportUploadLimit int             `json:"report_upload_limit"`
	Features          json.RawMessage `json:"features"`
}

type PlanDetailResponse struct {
	PlanResponse
	Total string `json:"total"`
}

type SubscriptionResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserEmail       string          `json:"user_email"`
	PlanName        string          `json:"plan_name"`
	PricePaid       decimal.Decimal `json:"price_paid"`
	PurchaseDate    string          `json:"purchase_date"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	Status          string          `json:"status"`
	ReportsUploaded int             `json:"reports_uploaded"`
	Renewed         bool            `json:"renewed"`
}

type PlanEligibilityResponse struct {
	PlanName         string `json:"plan_name"`
	EndDate          string `json:"end_date"`
	RemainingReports int    `json:"remaining_reports"`
}
