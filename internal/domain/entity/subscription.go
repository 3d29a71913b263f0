package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive  SubscriptionStatus = "active"
	SubscriptionStatusExpired SubscriptionStatus = "expired"
)

// Subscription is a user's plan purchase. At most one row per user is
// current: status active with an end date on or after today.
type Subscription struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail       string             `gorm:"type:varchar(255);not null;index" json:"user_email"`
	PlanName        string             `gorm:"type:varchar(100);not null" json:"plan_name"`
	PricePaid       decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"price_paid"`
	PurchaseDate    time.Time          `gorm:"type:date;not null" json:"purchase_date"`
	StartDate       time.Time          `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time          `gorm:"type:date;not null" json:"end_date"`
	Status          SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	ReportsUploaded int                `gorm:"not null;default:0" json:"reports_uploaded"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Plan Plan `gorm:"foreignKey:PlanName;references:Name" json:"plan,omitempty"`
}

func (Subscription) TableName() string {
	return "user_plans"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsCurrent reports whether the subscription is active and not past its end date.
func (s *Subscription) IsCurrent(today time.Time) bool {
	return s.Status == SubscriptionStatusActive && !s.EndDate.Before(today)
}

// RemainingReports is the plan quota minus reports already uploaded.
func (s *Subscription) RemainingReports() int {
	return s.Plan.ReportUploadLimit - s.ReportsUploaded
}
