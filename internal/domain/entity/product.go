package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Prescription requirement values stored on products.
const (
	PrescriptionNeeded    = "need"
	PrescriptionNotNeeded = "no need"
)

type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Category     string          `gorm:"type:varchar(100);not null;index"`
	Stock        int             `gorm:"default:0"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Image        []byte          `gorm:"type:bytea"`
	Size         string          `gorm:"type:varchar(50);not null"`
	Prescription string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
