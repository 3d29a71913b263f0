package converter

import (
	"encoding/json"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/pkg/blob"

	"github.com/shopspring/decimal"
)

func ProductToResponse(product *entity.Product) *dto.ProductResponse {
	if product == nil {
		return nil
	}

	return &dto.ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		Category:     product.Category,
		Stock:        product.Stock,
		Price:        product.Price,
		Image:        blob.Encode(product.Image),
		Size:         product.Size,
		Prescription: product.Prescription,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

func ProductsToResponses(products []entity.Product) []dto.ProductResponse {
	responses := make([]dto.ProductResponse, len(products))
	for i := range products {
		responses[i] = *ProductToResponse(&products[i])
	}
	return responses
}

// CartToResponse also sums line totals.
func CartToResponse(items []entity.CartItem) *dto.CartResponse {
	response := &dto.CartResponse{
		Items: make([]dto.CartItemResponse, len(items)),
		Total: decimal.Zero,
	}
	for i := range items {
		item := &items[i]
		lineTotal := item.LineTotal()
		response.Items[i] = dto.CartItemResponse{
			ID:           item.ID,
			ProductName:  item.ProductName,
			ProductSize:  item.ProductSize,
			ProductPrice: item.ProductPrice,
			ProductImage: blob.Encode(item.ProductImage),
			Quantity:     item.Quantity,
			LineTotal:    lineTotal,
		}
		response.Total = response.Total.Add(lineTotal)
	}
	return response
}

// OrderItemsTotal is the sum of price times quantity.
func OrderItemsTotal(items []dto.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func decodeOrderItems(raw []byte) []dto.OrderItem {
	items := []dto.OrderItem{}
	if len(raw) > 0 {
		// Rows are only ever written from []dto.OrderItem.
		_ = json.Unmarshal(raw, &items)
	}
	return items
}

func OrderToResponse(order *entity.Order) *dto.OrderResponse {
	if order == nil {
		return nil
	}

	return &dto.OrderResponse{
		ID:            order.ID,
		UserEmail:     order.UserEmail,
		Total:         order.Total,
		OrderStatus:   string(order.OrderStatus),
		PaymentMethod: order.PaymentMethod,
		Items:         decodeOrderItems(order.Items),
		CreatedAt:     order.CreatedAt,
	}
}

func OrdersToResponses(orders []entity.Order) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *OrderToResponse(&orders[i])
	}
	return responses
}
