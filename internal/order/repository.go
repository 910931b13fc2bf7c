package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	// CreateFromCart materializes cart lines into an order plus its items in
	// one transaction, capturing current unit prices as it goes. On error
	// nothing is persisted.
	CreateFromCart(ctx context.Context, o *Order, lines []Line) error

	// RecordPurchase inserts one purchase row per line and decrements the
	// product stock by the purchased quantity, atomically. There is no floor
	// check: stock may go negative, as it always has.
	RecordPurchase(ctx context.Context, userID string, lines []Line) error

	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	MarkOutForDelivery(ctx context.Context, orderID string) error
	MarkDelivered(ctx context.Context, orderID string) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) CreateFromCart(ctx context.Context, o *Order, lines []Line) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return creationErr("begin", err)
	}
	defer tx.Rollback()

	// Capture the current unit price of every line first. Prices are read
	// once here and not locked against concurrent changes; a price update
	// that lands mid-checkout wins or loses by timing alone.
	o.Items = o.Items[:0]
	o.TotalAmount = 0
	for _, line := range lines {
		var price float64
		err := tx.QueryRowContext(ctx,
			`SELECT price FROM products WHERE id = $1`,
			line.ProductID,
		).Scan(&price)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return creationErr("capture price", fmt.Errorf("%w: %s", ErrProductMissing, line.ProductID))
			}
			return creationErr("capture price", err)
		}

		o.Items = append(o.Items, Item{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     price,
		})
		o.TotalAmount += price * float64(line.Quantity)
	}

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.Status = StatusPending

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, shop_id, customer_name, customer_address, total_amount, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.UserID, o.ShopID, o.CustomerName, o.CustomerAddress, o.TotalAmount, o.Status, o.CreatedAt,
	)
	if err != nil {
		return creationErr("insert order", err)
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, price)
             VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), o.ID, it.ProductID, it.Quantity, it.Price,
		)
		if err != nil {
			return creationErr("insert order_item", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return creationErr("commit", err)
	}
	return nil
}

func (r *repo) RecordPurchase(ctx context.Context, userID string, lines []Line) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, line := range lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO purchases (id, user_id, product_id, quantity)
             VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), userID, line.ProductID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert purchase: %w", err)
		}

		// The UPDATE takes the row lock, so concurrent purchases of the same
		// product serialize their decrements. No floor check.
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET quantity = quantity - $1 WHERE id = $2`,
			line.Quantity, line.ProductID,
		)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, shop_id, customer_name, customer_address, total_amount, status, created_at
         FROM orders WHERE id = $1`,
		orderID,
	).Scan(&o.ID, &o.UserID, &o.ShopID, &o.CustomerName, &o.CustomerAddress, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, quantity, price
         FROM order_items WHERE order_id = $1`,
		o.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return &o, nil
}

func (r *repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			o.id, o.user_id, o.shop_id, o.customer_name, o.customer_address, o.total_amount, o.status, o.created_at,
			oi.product_id, oi.quantity, oi.price
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var (
		orders []Order
		last   *Order
	)
	for rows.Next() {
		var (
			o         Order
			productID sql.NullString
			quantity  sql.NullInt64
			price     sql.NullFloat64
		)
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.ShopID, &o.CustomerName, &o.CustomerAddress, &o.TotalAmount, &o.Status, &o.CreatedAt,
			&productID, &quantity, &price,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		if last == nil || last.ID != o.ID {
			orders = append(orders, o)
			last = &orders[len(orders)-1]
		}
		if productID.Valid {
			last.Items = append(last.Items, Item{
				ProductID: productID.String,
				Quantity:  int(quantity.Int64),
				Price:     price.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return orders, nil
}

func (r *repo) MarkOutForDelivery(ctx context.Context, orderID string) error {
	return r.setStatus(ctx, orderID, StatusOutForDelivery)
}

func (r *repo) MarkDelivered(ctx context.Context, orderID string) error {
	return r.setStatus(ctx, orderID, StatusDelivered)
}

func (r *repo) setStatus(ctx context.Context, orderID string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		status, orderID,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
