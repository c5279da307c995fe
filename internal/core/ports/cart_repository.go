package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// CartRepository defines persistence operations for carts. A cart is always
// read and written as one whole document keyed by its user ID.
type CartRepository interface {
	// FindByUserID returns the user's cart, or domain.ErrCartNotFound when
	// the user has never added an item.
	FindByUserID(ctx context.Context, userID string) (*domain.Cart, error)
	// Save upserts the whole cart document, creating it on first write.
	Save(ctx context.Context, cart *domain.Cart) error
}
