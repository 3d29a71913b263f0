package handler

import (
	"net/http"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/response"
	"carelink-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validator.CustomValidator
}

func NewProductHandler(productUsecase usecase.ProductUsecase, validator *validator.CustomValidator) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
	}
}

// Create handles product creation
// @Summary Create a new product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "Create Product Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /products/add [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	product, err := h.productUsecase.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Product created successfully", product)
}

// GetAll handles listing products, optionally filtered by ?prescription=
// @Summary Get all products
// @Tags Products
// @Produce json
// @Param prescription query string false "need or no need"
// @Success 200 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("prescription"))
}

func (h *ProductHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, entity.PrescriptionNotNeeded)
}

func (h *ProductHandler) GetOnSale(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, entity.PrescriptionNeeded)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, prescription string) {
	products, err := h.productUsecase.GetAll(r.Context(), prescription)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Products retrieved successfully", dto.ProductListResponse{Products: products})
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	product, err := h.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Product retrieved successfully", product)
}

// Update handles product update
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body dto.UpdateProductRequest true "Update Product Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	var req dto.UpdateProductRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	product, err := h.productUsecase.Update(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	if err := h.productUsecase.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req dto.AddToCartRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.productUsecase.AddToCart(r.Context(), &req); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Product added to cart", nil)
}

func (h *ProductHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.productUsecase.GetCart(r.Context(), r.URL.Query().Get("userEmail"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Cart retrieved successfully", cart)
}

func (h *ProductHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	id, err := uuid.Parse(query.Get("product_id"))
	if err != nil {
		response.BadRequest(w, "Invalid product_id")
		return
	}

	if err := h.productUsecase.RemoveFromCart(r.Context(), query.Get("userEmail"), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Product removed from cart", nil)
}
