package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"craftmarket/internal/errors"
	"craftmarket/internal/model"
	"craftmarket/internal/repository"
)

// CreateProductInput carries a validated listing request.
type CreateProductInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Images      []string
}

// UpdateProductInput carries a partial listing edit; nil fields keep their
// current values.
type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	IsActive    *bool
	Images      []string
}

// ProductService exposes catalog operations.
type ProductService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateProductInput) (*model.Product, error)
	List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, id, callerID uuid.UUID, in UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type productService struct {
	products repository.ProductRepository
}

// NewProductService builds a ProductService over the catalog repository.
func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) Create(ctx context.Context, ownerID uuid.UUID, in CreateProductInput) (*model.Product, error) {
	product := &model.Product{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Images:      in.Images,
		OwnerID:     ownerID,
		IsActive:    true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.load(ctx, id)
}

// Update applies a partial edit. Only the owner may modify a listing.
func (s *productService) Update(ctx context.Context, id, callerID uuid.UUID, in UpdateProductInput) (*model.Product, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != callerID {
		return nil, errors.ErrNoPermission
	}

	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.Images != nil {
		product.Images = in.Images
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// Delete removes a listing. Only the owner may delete it.
func (s *productService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	product, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if product.OwnerID != callerID {
		return errors.ErrNoPermission
	}
	if err := s.products.Delete(ctx, product); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *productService) load(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}
