package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrojas/tienda-backend/internal/modules/catalog"
)

type memStore struct {
	carts map[string]Items
}

func newMemStore() *memStore { return &memStore{carts: map[string]Items{}} }

func (s *memStore) Get(_ context.Context, sessionID string) (Items, error) {
	return append(Items{}, s.carts[sessionID]...), nil
}

func (s *memStore) Save(_ context.Context, sessionID string, items Items) error {
	s.carts[sessionID] = append(Items{}, items...)
	return nil
}

func (s *memStore) Clear(_ context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	return nil
}

type stubCatalog struct {
	products map[int64]*catalog.Product
}

func (c *stubCatalog) GetProductByID(_ context.Context, id int64) (*catalog.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *stubCatalog) CreateProduct(context.Context, *catalog.Product) error { return nil }
func (c *stubCatalog) ListProducts(context.Context) ([]*catalog.Product, error) {
	return nil, nil
}
func (c *stubCatalog) ListAvailableProducts(context.Context) ([]*catalog.Product, error) {
	return nil, nil
}
func (c *stubCatalog) UpdateProduct(context.Context, *catalog.Product) error { return nil }
func (c *stubCatalog) DeleteProduct(context.Context, int64) error            { return nil }

func newCartService(products ...*catalog.Product) (Service, *memStore) {
	stub := &stubCatalog{products: map[int64]*catalog.Product{}}
	for _, p := range products {
		stub.products[p.ID] = p
	}
	store := newMemStore()
	return NewService(store, stub), store
}

const sid = "session-1"

func TestAddNewProduct(t *testing.T) {
	svc, _ := newCartService(&catalog.Product{ID: 1, Name: "Pan", Quantity: 10, Price: 2.5})

	item, created, err := svc.Add(context.Background(), sid, 1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, Item{ProductID: 1, Name: "Pan", UnitPrice: 2.5, Quantity: 1}, item)
}

func TestAddOutOfStockProduct(t *testing.T) {
	svc, store := newCartService(&catalog.Product{ID: 1, Name: "Pan", Quantity: 0, Price: 2.5})

	_, _, err := svc.Add(context.Background(), sid, 1)
	assert.ErrorIs(t, err, ErrOutOfStock)

	items, err := svc.Get(context.Background(), sid)
	require.NoError(t, err)
	assert.Empty(t, items, "zero stock must never create a cart entry")
	assert.Empty(t, store.carts[sid])
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := newCartService()

	_, _, err := svc.Add(context.Background(), sid, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddIncrementsUpToStock(t *testing.T) {
	svc, _ := newCartService(&catalog.Product{ID: 1, Name: "Pan", Quantity: 2, Price: 2.5})
	ctx := context.Background()

	_, _, err := svc.Add(ctx, sid, 1)
	require.NoError(t, err)

	item, created, err := svc.Add(ctx, sid, 1)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 2, item.Quantity)

	// A third unit would exceed stock.
	_, _, err = svc.Add(ctx, sid, 1)
	assert.ErrorIs(t, err, ErrStockInsufficient)

	items, err := svc.Get(ctx, sid)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity, "rejected add must leave quantity unchanged")
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("zero removes the entry", func(t *testing.T) {
		svc, _ := newCartService(&catalog.Product{ID: 1, Name: "Pan", Quantity: 10, Price: 2.5})
		_, _, err := svc.Add(ctx, sid, 1)
		require.NoError(t, err)

		removed, err := svc.SetQuantity(ctx, sid, 1, 0)
		require.NoError(t, err)
		assert.True(t, removed)

		items, err := svc.Get(ctx, sid)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("within stock updates", func(t *testing.T) {
		svc, _ := newCartService(&catalog.Product{ID: 1, Name: "Pan", Quantity: 10, Price: 2.5})
		_, _, err := svc.Add(ctx, sid, 1)
		require.NoError(t, err)

		removed, err := svc.SetQuantity(ctx, sid, 1, 7)
		require.NoError(t, err)
		assert.False(t, removed)

		items, err := svc.Get(ctx, sid)
		require.NoError(t, err)
		assert.Equal(t, 7, items[0].Quantity)
	})

	t.Run("above stock is rejected, prior quantity kept", func(t *testing.T) {
		svc, _ := newCartService(&catalog.Product{ID: 1, Name: "Pan", Quantity: 10, Price: 2.5})
		_, _, err := svc.Add(ctx, sid, 1)
		require.NoError(t, err)
		_, err = svc.SetQuantity(ctx, sid, 1, 3)
		require.NoError(t, err)

		_, err = svc.SetQuantity(ctx, sid, 1, 11)
		assert.ErrorIs(t, err, ErrStockInsufficient)

		items, err := svc.Get(ctx, sid)
		require.NoError(t, err)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("product not in cart is a no-op", func(t *testing.T) {
		svc, _ := newCartService(&catalog.Product{ID: 1, Name: "Pan", Quantity: 10, Price: 2.5})

		removed, err := svc.SetQuantity(ctx, sid, 1, 5)
		require.NoError(t, err)
		assert.False(t, removed)

		items, err := svc.Get(ctx, sid)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartService(
		&catalog.Product{ID: 1, Name: "Pan", Quantity: 10, Price: 2.5},
		&catalog.Product{ID: 2, Name: "Leche", Quantity: 5, Price: 1.2},
	)

	_, _, err := svc.Add(ctx, sid, 1)
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, sid, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, sid, 1))

	items, err := svc.Get(ctx, sid)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)

	// Removing an absent product is a no-op.
	require.NoError(t, svc.Remove(ctx, sid, 99))
}

func TestSnapshotPriceSurvivesCatalogDrift(t *testing.T) {
	ctx := context.Background()
	p := &catalog.Product{ID: 1, Name: "Pan", Quantity: 10, Price: 2.5}
	svc, _ := newCartService(p)

	_, _, err := svc.Add(ctx, sid, 1)
	require.NoError(t, err)

	// Catalog price changes after the item was added.
	p.Price = 99

	items, err := svc.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 2.5, items[0].UnitPrice, "cart keeps the add-time snapshot")
}
