package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	products map[int64]*Product
	nextID   int64
}

func newMemRepo() *memRepo { return &memRepo{products: map[int64]*Product{}, nextID: 1} }

func (r *memRepo) CreateProduct(_ context.Context, p *Product) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memRepo) GetProductByID(_ context.Context, id int64) (*Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) ListProducts(_ context.Context) ([]*Product, error) {
	var products []*Product
	for _, p := range r.products {
		products = append(products, p)
	}
	return products, nil
}

func (r *memRepo) ListAvailableProducts(ctx context.Context) ([]*Product, error) {
	all, _ := r.ListProducts(ctx)
	var available []*Product
	for _, p := range all {
		if p.Quantity > 0 {
			available = append(available, p)
		}
	}
	return available, nil
}

func (r *memRepo) UpdateProduct(_ context.Context, p *Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memRepo) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type countingSyncer struct{ calls int }

func (s *countingSyncer) Sync(context.Context) error {
	s.calls++
	return nil
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newMemRepo(), &countingSyncer{})
	ctx := context.Background()

	for _, tt := range []struct {
		name     string
		prodName string
		quantity int
		price    float64
	}{
		{"empty name", "", 1, 1},
		{"negative quantity", "Pan", -1, 1},
		{"negative price", "Pan", 1, -0.5},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tt.prodName, "General", tt.quantity, tt.price)
			assert.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}

func TestMutationsTriggerMirrorSync(t *testing.T) {
	repo := newMemRepo()
	syncer := &countingSyncer{}
	svc := NewService(repo, syncer)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, "Pan", "Panadería", 10, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 1, syncer.calls)

	require.NoError(t, svc.UpdateProduct(ctx, p.ID, "Pan", "Panadería", 8, 2.75))
	assert.Equal(t, 2, syncer.calls)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	assert.Equal(t, 3, syncer.calls)

	// Reads leave the mirrors alone.
	_, err = svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, syncer.calls)
}

func TestFailedMutationDoesNotSync(t *testing.T) {
	syncer := &countingSyncer{}
	svc := NewService(newMemRepo(), syncer)
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateProduct(ctx, 42, "Pan", "", 1, 1), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, 42), ErrNotFound)
	assert.Zero(t, syncer.calls)
}

func TestListAvailableExcludesOutOfStock(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &countingSyncer{})
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, "Pan", "Panadería", 10, 2.5)
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, "Leche", "Lácteos", 0, 1.2)
	require.NoError(t, err)

	available, err := svc.ListAvailableProducts(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Pan", available[0].Name)
}
