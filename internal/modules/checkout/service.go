package checkout

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/davidrojas/tienda-backend/internal/modules/cart"
)

// ErrEmptyCart is returned when checking out with nothing in the cart.
// No state changes.
var ErrEmptyCart = errors.New("cart is empty")

// Syncer rewrites the catalog file mirrors after stock changes.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Service defines the checkout business logic.
type Service interface {
	// Checkout converts the cart into a persisted sale with its lines,
	// decrementing stock atomically. Returns the new sale, or an error with
	// no visible side effects.
	Checkout(ctx context.Context, userID int64, items cart.Items) (*Sale, error)

	SaleDetail(ctx context.Context, id int64) (*SaleDetail, error)
	DeleteSale(ctx context.Context, id int64) error
}

type service struct {
	repo   Repository
	mirror Syncer
}

// NewService creates a new checkout service.
func NewService(repo Repository, mirror Syncer) Service {
	return &service{repo: repo, mirror: mirror}
}

func (s *service) Checkout(ctx context.Context, userID int64, items cart.Items) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	sale := &Sale{
		UserID: userID,
		Date:   time.Now().UTC(),
		Total:  items.Total(),
	}
	lines := make([]SaleLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, SaleLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Subtotal:  it.UnitPrice * float64(it.Quantity),
		})
	}

	if err := s.repo.CreateSale(ctx, sale, lines); err != nil {
		return nil, err
	}

	// Stock changed, so the file mirrors are stale. A failed sync is logged
	// and the sale stands.
	if err := s.mirror.Sync(ctx); err != nil {
		log.Printf("mirror sync after checkout: %v", err)
	}
	return sale, nil
}

func (s *service) SaleDetail(ctx context.Context, id int64) (*SaleDetail, error) {
	return s.repo.GetSaleDetail(ctx, id)
}

func (s *service) DeleteSale(ctx context.Context, id int64) error {
	return s.repo.DeleteSale(ctx, id)
}
