package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order keeps a snapshot of the items and total at creation time.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail     string          `gorm:"type:varchar(255);not null;index" json:"user_email"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	OrderStatus   OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"order_status"`
	PaymentMethod string          `gorm:"type:varchar(50);not null" json:"payment_method"`
	Items         datatypes.JSON  `gorm:"type:jsonb;not null" json:"items"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
