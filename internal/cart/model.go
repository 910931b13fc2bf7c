package cart

import (
	"errors"
	"time"
)

var ErrNegativeQuantity = errors.New("quantity must be zero or positive")

// Cart is the in-progress selection for one browser session: product id to
// quantity. Quantities overwrite, they never accumulate, and a zero quantity
// removes the line, so the cart never holds a non-positive entry.
type Cart struct {
	Lines     map[string]int `json:"lines"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func New() *Cart {
	return &Cart{Lines: map[string]int{}}
}

// SetLine upserts the quantity for a product. Zero removes the line, a
// negative quantity is rejected, and there is no stock validation here;
// stock is only checked when an order is placed.
func (c *Cart) SetLine(productID string, quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	if c.Lines == nil {
		c.Lines = map[string]int{}
	}
	if quantity == 0 {
		delete(c.Lines, productID)
		return nil
	}
	c.Lines[productID] = quantity
	return nil
}

func (c *Cart) Clear() {
	c.Lines = map[string]int{}
}

func (c *Cart) Len() int {
	return len(c.Lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
