package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=2"`
	Category     string          `json:"category" validate:"required"`
	Stock        int             `json:"stock" validate:"gte=0"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Image        string          `json:"image"`
	Size         string          `json:"size" validate:"required"`
	Prescription string          `json:"prescription" validate:"required,oneof=need 'no need'"`
}

type UpdateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=2"`
	Category     string          `json:"category" validate:"required"`
	Stock        int             `json:"stock" validate:"gte=0"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Image        string          `json:"image"`
	Size         string          `json:"size" validate:"required"`
	Prescription string          `json:"prescription" validate:"required,oneof=need 'no need'"`
}

type AddToCartRequest struct {
	UserEmail    string          `json:"userEmail" validate:"required,email"`
	ProductName  string          `json:"productName" validate:"required"`
	ProductSize  string          `json:"productSize" validate:"required"`
	ProductPrice decimal.Decimal `json:"productPrice" validate:"required"`
	ProductImage string          `json:"productImage"`
	Quantity     int             `json:"quantity" validate:"omitempty,gt=0"`
}

type OrderItem struct {
	ProductName string          `json:"product_name" validate:"required"`
	ProductSize string          `json:"product_size"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	Price       decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	UserEmail     string      `json:"user_email" validate:"required,email"`
	PaymentMethod string      `json:"payment_method" validate:"required"`
	Items         []OrderItem `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

// Response DTOs

type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	Image        *string         `json:"image"`
	Size         string          `json:"size"`
	Prescription string          `json:"prescription"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

type CartItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductName  string          `json:"productName"`
	ProductSize  string          `json:"productSize"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	ProductImage *string         `json:"productImage"`
	Quantity     int             `json:"quantity"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserEmail     string          `json:"user_email"`
	Total         decimal.Decimal `json:"total"`
	OrderStatus   string          `json:"order_status"`
	PaymentMethod string          `json:"payment_method"`
	Items         []OrderItem     `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}
