package ports

import "context"

// CartService defines the cart mutation operations.
type CartService interface {
	// AddItem merges quantity of productID into the user's cart, lazily
	// creating the cart on first use.
	AddItem(ctx context.Context, userID, productID string, quantity int) error
	// RemoveItem deletes the line item for productID from the user's cart.
	RemoveItem(ctx context.Context, userID, productID string) error
}
