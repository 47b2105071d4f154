package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrojas/tienda-backend/internal/modules/cart"
)

// fakeRepo mimics the transactional repository: a sale only lands when every
// conditional decrement succeeds, otherwise nothing is recorded.
type fakeRepo struct {
	stock  map[int64]int
	sales  []*Sale
	lines  [][]SaleLine
	nextID int64
}

func newFakeRepo(stock map[int64]int) *fakeRepo {
	return &fakeRepo{stock: stock, nextID: 1}
}

func (r *fakeRepo) CreateSale(_ context.Context, sale *Sale, lines []SaleLine) error {
	// Validate every decrement before applying any, the rollback semantics
	// of the real transaction.
	for _, l := range lines {
		if r.stock[l.ProductID] < l.Quantity {
			return fmt.Errorf("product %d: %w", l.ProductID, ErrStockDepleted)
		}
	}
	sale.ID = r.nextID
	r.nextID++
	for i := range lines {
		lines[i].SaleID = sale.ID
		r.stock[lines[i].ProductID] -= lines[i].Quantity
	}
	r.sales = append(r.sales, sale)
	r.lines = append(r.lines, lines)
	return nil
}

func (r *fakeRepo) GetSaleDetail(_ context.Context, id int64) (*SaleDetail, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return &SaleDetail{Sale: *s}, nil
		}
	}
	return nil, ErrSaleNotFound
}

func (r *fakeRepo) DeleteSale(_ context.Context, id int64) error {
	for i, s := range r.sales {
		if s.ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return ErrSaleNotFound
}

type fakeSyncer struct{ calls int }

func (s *fakeSyncer) Sync(context.Context) error {
	s.calls++
	return nil
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := newFakeRepo(map[int64]int{})
	syncer := &fakeSyncer{}
	svc := NewService(repo, syncer)

	_, err := svc.Checkout(context.Background(), 1, cart.Items{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, repo.sales, "empty cart must change no persisted state")
	assert.Zero(t, syncer.calls)
}

func TestCheckoutPanScenario(t *testing.T) {
	// Product ("Pan", 10, 2.50), added to the cart three times.
	repo := newFakeRepo(map[int64]int{1: 10})
	syncer := &fakeSyncer{}
	svc := NewService(repo, syncer)

	items := cart.Items{{ProductID: 1, Name: "Pan", UnitPrice: 2.5, Quantity: 3}}
	sale, err := svc.Checkout(context.Background(), 7, items)
	require.NoError(t, err)

	assert.Equal(t, 7, repo.stock[1], "stock decremented by the sold quantity")
	require.Len(t, repo.sales, 1)
	assert.Equal(t, int64(7), sale.UserID)
	assert.InDelta(t, 7.5, sale.Total, 1e-9)

	require.Len(t, repo.lines[0], 1)
	line := repo.lines[0][0]
	assert.Equal(t, 3, line.Quantity)
	assert.InDelta(t, 7.5, line.Subtotal, 1e-9)
	assert.Equal(t, sale.ID, line.SaleID)

	assert.Equal(t, 1, syncer.calls, "stock changed, mirrors must be resynced")
}

func TestCheckoutStockDepletedConcurrently(t *testing.T) {
	// Two units were in the cart, but only one is left by checkout time.
	repo := newFakeRepo(map[int64]int{1: 1})
	syncer := &fakeSyncer{}
	svc := NewService(repo, syncer)

	items := cart.Items{{ProductID: 1, Name: "Pan", UnitPrice: 2.5, Quantity: 2}}
	_, err := svc.Checkout(context.Background(), 1, items)
	assert.ErrorIs(t, err, ErrStockDepleted)

	assert.Empty(t, repo.sales, "no partial sale may persist")
	assert.Equal(t, 1, repo.stock[1], "stock untouched after rollback")
	assert.Zero(t, syncer.calls)
}

func TestCheckoutAllOrNothingAcrossLines(t *testing.T) {
	// The second line's stock vanished; the first line must not stick.
	repo := newFakeRepo(map[int64]int{1: 5, 2: 0})
	svc := NewService(repo, &fakeSyncer{})

	items := cart.Items{
		{ProductID: 1, Name: "Pan", UnitPrice: 2.5, Quantity: 1},
		{ProductID: 2, Name: "Leche", UnitPrice: 1.2, Quantity: 1},
	}
	_, err := svc.Checkout(context.Background(), 1, items)
	assert.ErrorIs(t, err, ErrStockDepleted)
	assert.Equal(t, 5, repo.stock[1])
	assert.Empty(t, repo.sales)
}

func TestDeleteSale(t *testing.T) {
	repo := newFakeRepo(map[int64]int{1: 10})
	svc := NewService(repo, &fakeSyncer{})

	sale, err := svc.Checkout(context.Background(), 1,
		cart.Items{{ProductID: 1, Name: "Pan", UnitPrice: 2.5, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSale(context.Background(), sale.ID))
	assert.ErrorIs(t, svc.DeleteSale(context.Background(), sale.ID), ErrSaleNotFound)

	_, err = svc.SaleDetail(context.Background(), sale.ID)
	assert.ErrorIs(t, err, ErrSaleNotFound)
}
