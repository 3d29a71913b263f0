package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is unique per (user, product, size); adding the same line again
// increases Quantity.
type CartItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail    string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_line" json:"user_email"`
	ProductName  string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_line" json:"product_name"`
	ProductSize  string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_cart_line" json:"product_size"`
	ProductPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"product_price"`
	ProductImage []byte          `gorm:"type:bytea" json:"-"`
	Quantity     int             `gorm:"not null;default:1" json:"quantity"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart"
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *CartItem) LineTotal() decimal.Decimal {
	return c.ProductPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
