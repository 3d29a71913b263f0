package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PrescriptionStatus string

const (
	PrescriptionStatusPending   PrescriptionStatus = "pending"
	PrescriptionStatusProcessed PrescriptionStatus = "processed"
)

// Prescription is an image a user uploads so the pharmacy can prepare an order.
type Prescription struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail string             `gorm:"type:varchar(255);not null;index" json:"user_email"`
	Image     []byte             `gorm:"type:bytea;not null" json:"-"`
	Note      string             `gorm:"type:text" json:"note,omitempty"`
	Status    PrescriptionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PresOrder is the pharmacy order derived from a prescription.
type PresOrder struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PrescriptionID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"prescription_id"`
	UserEmail      string          `gorm:"type:varchar(255);not null;index" json:"user_email"`
	Items          datatypes.JSON  `gorm:"type:jsonb;not null" json:"items"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (PresOrder) TableName() string {
	return "pres_orders"
}

func (p *PresOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
