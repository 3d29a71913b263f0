package handler

import (
	"net/http"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/delivery/http/middleware"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/response"
	"carelink-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
	validator    *validator.CustomValidator
}

func NewOrderHandler(orderUsecase usecase.OrderUsecase, validator *validator.CustomValidator) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
		validator:    validator,
	}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	order, err := h.orderUsecase.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Order created successfully", order)
}

func (h *OrderHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.GetByUser(r.Context(), r.URL.Query().Get("user_email"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid order ID")
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	actor, _ := middleware.GetUserEmailFromContext(r.Context())
	order, err := h.orderUsecase.UpdateStatus(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Order status updated successfully", order)
}
