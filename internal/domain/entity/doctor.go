package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Doctor signs up independently from User.
type Doctor struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Email         string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Specialty     string          `gorm:"type:varchar(100);not null;index" json:"specialty"`
	LicenseNumber string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Password      string          `gorm:"type:text;not null" json:"-"`
	Image         []byte          `gorm:"type:bytea" json:"-"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	Rating        decimal.Decimal `gorm:"type:decimal(2,1);not null;default:0" json:"rating"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Reviews []Review `gorm:"foreignKey:DoctorEmail;references:Email" json:"reviews,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
