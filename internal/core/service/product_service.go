package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

// ProductCache abstracts the catalog read cache (Redis). Cache failures are
// never fatal; callers fall back to the repository.
type ProductCache interface {
	// Get returns the cached product list; ok is false on a miss.
	Get(ctx context.Context) (products []domain.Product, ok bool, err error)
	Set(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

// ProductService implements catalog operations.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ProductCache
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

// List returns all products, serving from the cache when possible.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		products, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("product cache read failed, falling back to store")
		} else if ok {
			return products, nil
		}
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			s.logger.Warn().Err(err).Msg("failed to fill product cache")
		}
	}
	return products, nil
}

// Create adds a new catalog entry. All three fields are required.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" || input.Description == "" || input.Price <= 0 {
		return nil, fmt.Errorf("%w: name, price, and description are required", domain.ErrValidation)
	}

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate product cache")
		}
	}

	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// GetByID resolves a single product; used by the cart engine for existence checks.
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}
