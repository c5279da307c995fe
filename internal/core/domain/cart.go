package domain

import "errors"

var ErrCartNotFound = errors.New("cart not found")
var ErrItemNotFound = errors.New("product not found in cart")

// CartItem is a single line item inside a cart. It is never addressed on its
// own; the owning Cart is the unit of persistence.
type CartItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart holds the pending line items for one user. Invariants maintained by
// the methods below:
//   - at most one item per product ID (duplicates merge by quantity)
//   - quantity is always >= 1
//   - insertion order of items is preserved across merges and removals
type Cart struct {
	ID     string     `json:"id" bson:"_id,omitempty"`
	UserID string     `json:"user_id" bson:"user_id"`
	Items  []CartItem `json:"items" bson:"items"`
}

// NewCart returns an empty cart scoped to userID.
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

// Merge adds quantity of productID to the cart. An existing line item for the
// product is incremented in place; otherwise a new item is appended.
func (c *Cart) Merge(productID string, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
}

// Remove deletes the line item for productID, keeping the order of the
// remaining items. Returns ErrItemNotFound when the product is not in the cart.
func (c *Cart) Remove(productID string) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Find returns the line item for productID, or nil when absent.
func (c *Cart) Find(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
