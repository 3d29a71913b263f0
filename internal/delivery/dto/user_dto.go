package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UploadImageRequest is shared by the user and doctor image endpoints.
type UploadImageRequest struct {
	Email string `json:"email" validate:"required,email"`
	Image string `json:"image" validate:"required"`
}

type UpdatePersonalInfoRequest struct {
	Email     string           `json:"email" validate:"required,email"`
	Birthday  string           `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Gender    string           `json:"gender" validate:"omitempty,oneof=male female other"`
	Weight    *decimal.Decimal `json:"weight"`
	Height    *decimal.Decimal `json:"height"`
	BloodType string           `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Work      string           `json:"work" validate:"omitempty,max=255"`
}

// Response DTOs

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type PersonalInfoResponse struct {
	Email     string              `json:"email"`
	Birthday  *string             `json:"birthday"`
	Gender    string              `json:"gender"`
	Weight    decimal.NullDecimal `json:"weight"`
	Height    decimal.NullDecimal `json:"height"`
	BloodType string              `json:"blood_type"`
	Work      string              `json:"work"`
}

type PatientDetailsResponse struct {
	Email     string              `json:"email"`
	Gender    string              `json:"gender"`
	Weight    decimal.NullDecimal `json:"weight"`
	Height    decimal.NullDecimal `json:"height"`
	BloodType string              `json:"blood_type"`
}

type PatientInfoResponse struct {
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
	Age   int     `json:"age"`
	Work  string  `json:"work"`
}
