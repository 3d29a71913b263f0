package usecase

import (
	"context"
	"strings"

	"carelink-backend/internal/converter"
	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/internal/domain/repository"
	"carelink-backend/pkg/apperror"
	"carelink-backend/pkg/blob"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ProductUsecase interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetAll(ctx context.Context, prescription string) ([]dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddToCart(ctx context.Context, req *dto.AddToCartRequest) error
	GetCart(ctx context.Context, userEmail string) (*dto.CartResponse, error)
	RemoveFromCart(ctx context.Context, userEmail string, id uuid.UUID) error
}

type productUsecase struct {
	log         *logrus.Logger
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
}

func NewProductUsecase(log *logrus.Logger, productRepo repository.ProductRepository, cartRepo repository.CartRepository) ProductUsecase {
	return &productUsecase{log: log, productRepo: productRepo, cartRepo: cartRepo}
}

func (u *productUsecase) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	image, err := blob.Decode(req.Image)
	if err != nil {
		return nil, ErrInvalidImage
	}

	product := &entity.Product{
		Name:         req.Name,
		Category:     req.Category,
		Stock:        req.Stock,
		Price:        req.Price,
		Image:        image,
		Size:         req.Size,
		Prescription: req.Prescription,
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		u.log.Warnf("Failed to create product: %+v", err)
		return nil, apperror.Storage(err)
	}

	return converter.ProductToResponse(product), nil
}

// GetAll lists products, narrowed to one prescription requirement when set.
func (u *productUsecase) GetAll(ctx context.Context, prescription string) ([]dto.ProductResponse, error) {
	products, err := u.productRepo.FindAll(ctx, prescription)
	if err != nil {
		u.log.Warnf("Failed to find products: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.ProductsToResponses(products), nil
}

func (u *productUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find product: %+v", err)
		return nil, apperror.Storage(err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return converter.ProductToResponse(product), nil
}

func (u *productUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find product: %+v", err)
		return nil, apperror.Storage(err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Image != "" {
		image, err := blob.Decode(req.Image)
		if err != nil {
			return nil, ErrInvalidImage
		}
		product.Image = image
	}
	product.Name = req.Name
	product.Category = req.Category
	product.Stock = req.Stock
	product.Price = req.Price
	product.Size = req.Size
	product.Prescription = req.Prescription

	if err := u.productRepo.Update(ctx, product); err != nil {
		u.log.Warnf("Failed to update product: %+v", err)
		return nil, apperror.Storage(err)
	}

	return converter.ProductToResponse(product), nil
}

func (u *productUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := u.productRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete product: %+v", err)
		return apperror.Storage(err)
	}
	if !deleted {
		return ErrProductNotFound
	}
	return nil
}

// AddToCart adds the line or bumps its quantity when the same product and
// size is already in the user's cart.
func (u *productUsecase) AddToCart(ctx context.Context, req *dto.AddToCartRequest) error {
	image, err := blob.Decode(req.ProductImage)
	if err != nil {
		return ErrInvalidImage
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item := &entity.CartItem{
		UserEmail:    strings.TrimSpace(req.UserEmail),
		ProductName:  req.ProductName,
		ProductSize:  req.ProductSize,
		ProductPrice: req.ProductPrice,
		ProductImage: image,
		Quantity:     quantity,
	}

	if err := u.cartRepo.AddOrIncrement(ctx, item); err != nil {
		u.log.Warnf("Failed to add cart item: %+v", err)
		return apperror.Storage(err)
	}
	return nil
}

func (u *productUsecase) GetCart(ctx context.Context, userEmail string) (*dto.CartResponse, error) {
	if strings.TrimSpace(userEmail) == "" {
		return nil, apperror.MissingFields("userEmail")
	}

	items, err := u.cartRepo.FindByUser(ctx, userEmail)
	if err != nil {
		u.log.Warnf("Failed to find cart: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.CartToResponse(items), nil
}

func (u *productUsecase) RemoveFromCart(ctx context.Context, userEmail string, id uuid.UUID) error {
	if strings.TrimSpace(userEmail) == "" {
		return apperror.MissingFields("userEmail")
	}

	deleted, err := u.cartRepo.Delete(ctx, userEmail, id)
	if err != nil {
		u.log.Warnf("Failed to delete cart item: %+v", err)
		return apperror.Storage(err)
	}
	if !deleted {
		return ErrCartItemNotFound
	}
	return nil
}
