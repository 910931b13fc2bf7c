package cart

import (
	"context"
	"fmt"
	"sort"

	"github.com/ishiply/storefront/internal/catalog"
)

type PricedLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type PricedCart struct {
	Lines []PricedLine `json:"lines"`
	Total float64      `json:"totalAmount"`
}

// Pricer enriches cart lines with current catalog prices.
type Pricer struct {
	catalog catalog.Reader
}

func NewPricer(c catalog.Reader) *Pricer {
	return &Pricer{catalog: c}
}

// PriceCart prices every line against the current catalog. Lines whose
// product no longer exists are omitted from the view; the session keeps the
// stale entry and it simply never shows up. Lines come back ordered by
// product id so repeated renders are stable.
func (p *Pricer) PriceCart(ctx context.Context, c *Cart) (*PricedCart, error) {
	priced := &PricedCart{Lines: []PricedLine{}}
	if c == nil || c.IsEmpty() {
		return priced, nil
	}

	ids := make([]string, 0, len(c.Lines))
	for id := range c.Lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	products, err := p.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}

	byID := make(map[string]catalog.Product, len(products))
	for _, prod := range products {
		byID[prod.ID] = prod
	}

	for _, id := range ids {
		prod, ok := byID[id]
		if !ok {
			continue
		}
		qty := c.Lines[id]
		subtotal := prod.Price * float64(qty)
		priced.Lines = append(priced.Lines, PricedLine{
			ProductID: id,
			Name:      prod.Name,
			UnitPrice: prod.Price,
			Quantity:  qty,
			Subtotal:  subtotal,
		})
		priced.Total += subtotal
	}

	return priced, nil
}
