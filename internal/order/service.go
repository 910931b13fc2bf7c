package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ishiply/storefront/internal/cart"
)

// Engine turns a session cart into persisted order rows. It owns the two
// checkout flows: full order placement and the lighter purchase-recording
// path that decrements stock.
type Engine struct {
	repo   Repository
	carts  cart.Store
	logger *zap.Logger
}

func NewEngine(repo Repository, carts cart.Store, logger *zap.Logger) *Engine {
	return &Engine{repo: repo, carts: carts, logger: logger}
}

// Checkout places an order for the session's cart. An empty cart fails fast
// before any storage write. The cart is cleared only after the order
// transaction commits; on any failure the session keeps its cart so the user
// can retry.
func (e *Engine) Checkout(ctx context.Context, sessionID, userID, shopID, customerName, customerAddress string) (*Order, error) {
	c, err := e.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	o := &Order{
		UserID:          userID,
		ShopID:          shopID,
		CustomerName:    customerName,
		CustomerAddress: customerAddress,
		CreatedAt:       time.Now().UTC(),
	}

	if err := e.repo.CreateFromCart(ctx, o, linesOf(c)); err != nil {
		return nil, err
	}

	// Best effort: the order exists either way, and the cart TTL will reap a
	// leftover cart eventually.
	if err := e.carts.Clear(ctx, sessionID); err != nil {
		e.logger.Warn("clear cart after checkout", zap.String("orderId", o.ID), zap.Error(err))
	}

	return o, nil
}

// Purchase records one purchase row per cart line and decrements stock, then
// empties the cart. This is the direct-purchase flow; no order is created.
func (e *Engine) Purchase(ctx context.Context, sessionID, userID string) error {
	c, err := e.carts.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if c.IsEmpty() {
		return ErrEmptyCart
	}

	if err := e.repo.RecordPurchase(ctx, userID, linesOf(c)); err != nil {
		return err
	}

	if err := e.carts.Clear(ctx, sessionID); err != nil {
		e.logger.Warn("clear cart after purchase", zap.String("userId", userID), zap.Error(err))
	}

	return nil
}

// linesOf flattens the cart map into lines ordered by product id so the
// transaction touches rows in a stable order.
func linesOf(c *cart.Cart) []Line {
	lines := make([]Line, 0, c.Len())
	for productID, qty := range c.Lines {
		lines = append(lines, Line{ProductID: productID, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}
