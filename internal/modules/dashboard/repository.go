package dashboard

import "context"

// Repository defines the read-only reporting queries. Everything here is a
// pure read; mutations belong to the owning modules.
type Repository interface {
	Metrics(ctx context.Context) (Metrics, error)
	ListSales(ctx context.Context) ([]SaleSummary, error)
	ListPurchasesByUser(ctx context.Context, userID int64) ([]Purchase, error)
}
