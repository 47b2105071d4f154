package cart

import (
	"context"
	"errors"

	"github.com/davidrojas/tienda-backend/internal/modules/catalog"
)

var (
	// ErrProductNotFound is returned when the product no longer exists in
	// the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock is returned when adding a product with no stock left.
	ErrOutOfStock = errors.New("product out of stock")

	// ErrStockInsufficient is returned when the requested quantity exceeds
	// current stock. The cart keeps its prior quantity.
	ErrStockInsufficient = errors.New("insufficient stock")
)

// Service defines the cart business logic. Every stock check re-reads the
// persisted quantity; the cart's own name/price fields stay as add-time
// snapshots.
type Service interface {
	// Add puts one unit of the product in the cart, incrementing the line
	// if it already exists. The returned flag is true when a new line was
	// created.
	Add(ctx context.Context, sessionID string, productID int64) (Item, bool, error)

	// SetQuantity sets a line's quantity. n <= 0 removes the line (the
	// returned flag is true). A quantity above current stock is rejected
	// with ErrStockInsufficient, leaving the line unchanged. Products not
	// in the cart are a no-op.
	SetQuantity(ctx context.Context, sessionID string, productID int64, n int) (bool, error)

	// Remove deletes the line if present, no-op otherwise.
	Remove(ctx context.Context, sessionID string, productID int64) error

	Get(ctx context.Context, sessionID string) (Items, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store    Store
	products catalog.Repository
}

// NewService creates a new cart service.
func NewService(store Store, products catalog.Repository) Service {
	return &service{store: store, products: products}
}

func (s *service) Add(ctx context.Context, sessionID string, productID int64) (Item, bool, error) {
	p, err := s.products.GetProductByID(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return Item{}, false, ErrProductNotFound
	}
	if err != nil {
		return Item{}, false, err
	}

	items, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Item{}, false, err
	}

	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if items[i].Quantity+1 > p.Quantity {
			return items[i], false, ErrStockInsufficient
		}
		items[i].Quantity++
		return items[i], false, s.store.Save(ctx, sessionID, items)
	}

	if p.Quantity <= 0 {
		return Item{}, false, ErrOutOfStock
	}
	item := Item{ProductID: p.ID, Name: p.Name, UnitPrice: p.Price, Quantity: 1}
	items = append(items, item)
	return item, true, s.store.Save(ctx, sessionID, items)
}

func (s *service) SetQuantity(ctx context.Context, sessionID string, productID int64, n int) (bool, error) {
	items, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range items {
		if items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	if n <= 0 {
		items = append(items[:idx], items[idx+1:]...)
		return true, s.store.Save(ctx, sessionID, items)
	}

	p, err := s.products.GetProductByID(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return false, ErrProductNotFound
	}
	if err != nil {
		return false, err
	}
	if n > p.Quantity {
		return false, ErrStockInsufficient
	}

	items[idx].Quantity = n
	return false, s.store.Save(ctx, sessionID, items)
}

func (s *service) Remove(ctx context.Context, sessionID string, productID int64) error {
	items, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.store.Save(ctx, sessionID, kept)
}

func (s *service) Get(ctx context.Context, sessionID string) (Items, error) {
	return s.store.Get(ctx, sessionID)
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}
