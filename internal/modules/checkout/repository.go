package checkout

import (
	"context"
	"errors"
)

var (
	// ErrStockDepleted is returned when a conditional stock decrement hits
	// zero rows: the stock vanished between add-to-cart and checkout. The
	// whole sale is rolled back.
	ErrStockDepleted = errors.New("stock depleted during checkout")

	// ErrSaleNotFound is returned when no sale matches the given id.
	ErrSaleNotFound = errors.New("sale not found")
)

// Repository defines the persistence operations for sales.
type Repository interface {
	// CreateSale persists the sale, its lines, and the stock decrements in a
	// single transaction. Either every row becomes visible or none does.
	// On success sale.ID holds the generated id.
	CreateSale(ctx context.Context, sale *Sale, lines []SaleLine) error

	GetSaleDetail(ctx context.Context, id int64) (*SaleDetail, error)

	// DeleteSale removes a sale; its lines cascade.
	DeleteSale(ctx context.Context, id int64) error
}
