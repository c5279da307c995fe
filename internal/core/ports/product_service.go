package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// CreateProductInput carries the data needed to add a catalog entry.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
}

// ProductService defines use-case operations for the catalog.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
