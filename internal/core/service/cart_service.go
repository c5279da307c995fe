package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
	"github.com/storefront/commerce-api/internal/pkg/keylock"
)

// CartService implements the cart mutation operations. Mutations are
// serialized per user through a striped lock, so two concurrent adds for the
// same product merge into one line item instead of duplicating it.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	locks    *keylock.KeyedMutex
	logger   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		locks:    keylock.New(0),
		logger:   logger,
	}
}

// AddItem merges quantity of productID into the user's cart. The cart is
// created lazily on the first add and persisted as one whole document.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if productID == "" || quantity < 1 {
		return fmt.Errorf("%w: product id and a positive quantity are required", domain.ErrValidation)
	}

	// Existence check happens before any cart read so a bad product ID never
	// creates a cart.
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}

	defer s.locks.Lock(userID)()

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrCartNotFound) {
			return err
		}
		cart = domain.NewCart(userID)
	}

	cart.Merge(productID, quantity)

	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save cart")
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("item added to cart")
	return nil
}

// RemoveItem deletes the line item for productID from the user's cart,
// preserving the order of the remaining items.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}

	defer s.locks.Lock(userID)()

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := cart.Remove(productID); err != nil {
		return err
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save cart")
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("product_id", productID).
		Msg("item removed from cart")
	return nil
}
