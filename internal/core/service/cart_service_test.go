package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
)

type stubCartRepo struct {
	mu      sync.Mutex
	byUser  map[string]*domain.Cart
	findErr error
	saveErr error
	saves   int
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{byUser: make(map[string]*domain.Cart)}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = append([]domain.CartItem(nil), c.Items...)
	return &clone
}

func (r *stubCartRepo) FindByUserID(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if c, ok := r.byUser[userID]; ok {
		return cloneCart(c), nil
	}
	return nil, domain.ErrCartNotFound
}

func (r *stubCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byUser[cart.UserID] = cloneCart(cart)
	r.saves++
	return nil
}

func (r *stubCartRepo) cart(userID string) *domain.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneCart(r.byUser[userID])
}

func seededProducts(ids ...string) *stubProductRepo {
	repo := &stubProductRepo{}
	for _, id := range ids {
		repo.products = append(repo.products, domain.Product{ID: id, Name: id, Price: 1, Description: id})
	}
	return repo
}

func newCartSvc(carts *stubCartRepo, products *stubProductRepo) *CartService {
	return NewCartService(carts, products, zerolog.Nop())
}

func TestCartService_AddItem_CreatesCartLazily(t *testing.T) {
	carts := newStubCartRepo()
	svc := newCartSvc(carts, seededProducts("p1"))

	if err := svc.AddItem(context.Background(), "u1", "p1", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart := carts.cart("u1")
	if cart == nil {
		t.Fatalf("cart not created")
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", cart.Items)
	}
}

func TestCartService_AddItem_MergesQuantities(t *testing.T) {
	carts := newStubCartRepo()
	svc := newCartSvc(carts, seededProducts("p1"))

	if err := svc.AddItem(context.Background(), "u1", "p1", 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(context.Background(), "u1", "p1", 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	cart := carts.cart("u1")
	if len(cart.Items) != 1 {
		t.Fatalf("expected one merged line item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
}

func TestCartService_AddItem_Validation(t *testing.T) {
	svc := newCartSvc(newStubCartRepo(), seededProducts("p1"))

	if err := svc.AddItem(context.Background(), "u1", "", 1); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty product id, got %v", err)
	}
	if err := svc.AddItem(context.Background(), "u1", "p1", 0); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for zero quantity, got %v", err)
	}
	if err := svc.AddItem(context.Background(), "u1", "p1", -3); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for negative quantity, got %v", err)
	}
}

func TestCartService_AddItem_UnknownProductDoesNotCreateCart(t *testing.T) {
	carts := newStubCartRepo()
	svc := newCartSvc(carts, seededProducts("p1"))

	if err := svc.AddItem(context.Background(), "u1", "p9", 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if carts.cart("u1") != nil {
		t.Fatalf("cart must not be created when the product does not exist")
	}
}

func TestCartService_RemoveItem_PreservesOrder(t *testing.T) {
	carts := newStubCartRepo()
	svc := newCartSvc(carts, seededProducts("p1", "p2", "p3"))

	for _, id := range []string{"p1", "p2", "p3"} {
		if err := svc.AddItem(context.Background(), "u1", id, 1); err != nil {
			t.Fatalf("add %s failed: %v", id, err)
		}
	}
	if err := svc.RemoveItem(context.Background(), "u1", "p1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	cart := carts.cart("u1")
	if len(cart.Items) != 2 || cart.Items[0].ProductID != "p2" || cart.Items[1].ProductID != "p3" {
		t.Fatalf("order not preserved: %+v", cart.Items)
	}
}

func TestCartService_RemoveItem_NoCart(t *testing.T) {
	svc := newCartSvc(newStubCartRepo(), seededProducts("p1"))

	if err := svc.RemoveItem(context.Background(), "u1", "p1"); !errors.Is(err, domain.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestCartService_RemoveItem_ItemNotInCart(t *testing.T) {
	carts := newStubCartRepo()
	svc := newCartSvc(carts, seededProducts("p1", "p2"))

	if err := svc.AddItem(context.Background(), "u1", "p1", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.RemoveItem(context.Background(), "u1", "p2"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCartService_RemoveItem_Validation(t *testing.T) {
	svc := newCartSvc(newStubCartRepo(), seededProducts())

	if err := svc.RemoveItem(context.Background(), "u1", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCartService_ConcurrentAdds_MergeIntoOneItem(t *testing.T) {
	carts := newStubCartRepo()
	svc := newCartSvc(carts, seededProducts("p1"))

	const adds = 20
	var wg sync.WaitGroup
	wg.Add(adds)
	for i := 0; i < adds; i++ {
		go func() {
			defer wg.Done()
			if err := svc.AddItem(context.Background(), "u1", "p1", 1); err != nil {
				t.Errorf("add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	cart := carts.cart("u1")
	if len(cart.Items) != 1 {
		t.Fatalf("race produced %d line items, expected 1", len(cart.Items))
	}
	if cart.Items[0].Quantity != adds {
		t.Fatalf("expected quantity %d, got %d", adds, cart.Items[0].Quantity)
	}
}
