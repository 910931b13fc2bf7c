package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishiply/storefront/internal/catalog"
)

type fakeCatalog struct {
	products map[string]catalog.Product
	err      error
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID string) (*catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

func (f *fakeCatalog) GetProductsByIDs(ctx context.Context, productIDs []string) ([]catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []catalog.Product
	for _, id := range productIDs {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetShop(ctx context.Context, shopID string) (*catalog.Shop, error) {
	return nil, catalog.ErrNotFound
}

func TestPriceCart_TotalAndSubtotals(t *testing.T) {
	cat := &fakeCatalog{products: map[string]catalog.Product{
		"productA": {ID: "productA", Name: "Widget", Price: 10.00},
		"productB": {ID: "productB", Name: "Gadget", Price: 5.00},
	}}
	pricer := NewPricer(cat)

	c := New()
	require.NoError(t, c.SetLine("productA", 2))
	require.NoError(t, c.SetLine("productB", 1))

	priced, err := pricer.PriceCart(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, priced.Lines, 2)

	assert.Equal(t, "productA", priced.Lines[0].ProductID)
	assert.Equal(t, 20.00, priced.Lines[0].Subtotal)
	assert.Equal(t, "productB", priced.Lines[1].ProductID)
	assert.Equal(t, 5.00, priced.Lines[1].Subtotal)
	assert.Equal(t, 25.00, priced.Total)
}

func TestPriceCart_DeletedProductDropped(t *testing.T) {
	cat := &fakeCatalog{products: map[string]catalog.Product{
		"productB": {ID: "productB", Name: "Gadget", Price: 5.00},
	}}
	pricer := NewPricer(cat)

	c := New()
	require.NoError(t, c.SetLine("deleted", 4))
	require.NoError(t, c.SetLine("productB", 1))

	priced, err := pricer.PriceCart(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, priced.Lines, 1)
	assert.Equal(t, "productB", priced.Lines[0].ProductID)
	assert.Equal(t, 5.00, priced.Total)

	// the stale entry stays in the session, it is only omitted from the view
	assert.Equal(t, 4, c.Lines["deleted"])
}

func TestPriceCart_RemovedLineNeverPriced(t *testing.T) {
	cat := &fakeCatalog{products: map[string]catalog.Product{
		"productA": {ID: "productA", Name: "Widget", Price: 10.00},
		"productB": {ID: "productB", Name: "Gadget", Price: 5.00},
	}}
	pricer := NewPricer(cat)

	c := New()
	require.NoError(t, c.SetLine("productA", 2))
	require.NoError(t, c.SetLine("productB", 1))
	require.NoError(t, c.SetLine("productA", 0))

	priced, err := pricer.PriceCart(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, priced.Lines, 1)
	assert.Equal(t, "productB", priced.Lines[0].ProductID)
}

func TestPriceCart_EmptyCart(t *testing.T) {
	pricer := NewPricer(&fakeCatalog{})

	priced, err := pricer.PriceCart(context.Background(), New())
	require.NoError(t, err)
	assert.Empty(t, priced.Lines)
	assert.Zero(t, priced.Total)
}

func TestPriceCart_CatalogError(t *testing.T) {
	pricer := NewPricer(&fakeCatalog{err: errors.New("db down")})

	c := New()
	require.NoError(t, c.SetLine("productA", 1))

	_, err := pricer.PriceCart(context.Background(), c)
	require.Error(t, err)
}
