package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type UploadPrescriptionRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
	Image     string `json:"image" validate:"required"`
	Note      string `json:"note"`
}

type CreatePresOrderRequest struct {
	Items []OrderItem `json:"items" validate:"required,min=1,dive"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	UserEmail string    `json:"user_email"`
	Image     *string   `json:"image"`
	Note      string    `json:"note,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type PresOrderResponse struct {
	ID             uuid.UUID       `json:"id"`
	PrescriptionID uuid.UUID       `json:"prescription_id"`
	UserEmail      string          `json:"user_email"`
	Items          []OrderItem     `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}
