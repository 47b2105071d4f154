package mirror

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrojas/tienda-backend/internal/modules/catalog"
)

type staticSource struct {
	products []*catalog.Product
}

func (s *staticSource) ListProducts(context.Context) ([]*catalog.Product, error) {
	return s.products, nil
}

func newTestMirror(t *testing.T, products ...*catalog.Product) (*Mirror, *staticSource) {
	t.Helper()
	src := &staticSource{products: products}
	m, err := New(t.TempDir(), src)
	require.NoError(t, err)
	return m, src
}

func TestSyncThenReadBack(t *testing.T) {
	m, _ := newTestMirror(t,
		&catalog.Product{ID: 1, Name: "Pan", Category: "Panadería", Quantity: 10, Price: 2.5},
		&catalog.Product{ID: 2, Name: "Leche", Category: "Lácteos", Quantity: 4, Price: 1.2},
	)
	require.NoError(t, m.Sync(context.Background()))

	expected := []Record{
		{Nombre: "Pan", Cantidad: 10, Precio: 2.5},
		{Nombre: "Leche", Cantidad: 4, Precio: 1.2},
	}

	// All three readers reproduce the same product set.
	assert.Equal(t, expected, m.ReadText())
	assert.Equal(t, expected, m.ReadJSON())
	assert.Equal(t, expected, m.ReadCSV())
}

func TestSyncOverwrites(t *testing.T) {
	m, src := newTestMirror(t,
		&catalog.Product{ID: 1, Name: "Pan", Quantity: 10, Price: 2.5},
		&catalog.Product{ID: 2, Name: "Leche", Quantity: 4, Price: 1.2},
	)
	require.NoError(t, m.Sync(context.Background()))

	src.products = src.products[:1]
	require.NoError(t, m.Sync(context.Background()))

	assert.Len(t, m.ReadText(), 1, "sync rewrites in full, never appends")
	assert.Len(t, m.ReadJSON(), 1)
	assert.Len(t, m.ReadCSV(), 1)
}

func TestMissingFilesDegradeToEmpty(t *testing.T) {
	m, _ := newTestMirror(t)

	assert.Empty(t, m.ReadText())
	assert.Empty(t, m.ReadJSON())
	assert.Empty(t, m.ReadCSV())
}

func TestMalformedFilesDegradeToEmpty(t *testing.T) {
	dir := t.TempDir()
	m, err := New(dir, &staticSource{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, TextFile), []byte("Pan,diez,2.5\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, JSONFile), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, CSVFile), []byte("nombre,cantidad,precio\nPan,x,2.5\n"), 0o644))

	assert.Empty(t, m.ReadText())
	assert.Empty(t, m.ReadJSON())
	assert.Empty(t, m.ReadCSV())
}

func TestSyncEmptyCatalog(t *testing.T) {
	m, _ := newTestMirror(t)
	require.NoError(t, m.Sync(context.Background()))

	assert.True(t, m.Exists(TextFile))
	assert.True(t, m.Exists(JSONFile))
	assert.True(t, m.Exists(CSVFile))
	assert.Empty(t, m.ReadText())
	assert.Empty(t, m.ReadJSON())
	assert.Empty(t, m.ReadCSV())
}
