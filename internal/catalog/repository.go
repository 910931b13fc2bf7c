package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("not found")

	ErrMissingName     = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("price must be zero or positive")
	ErrInvalidQuantity = errors.New("quantity must be zero or positive")
)

// Reader is the read-only slice of the repository the cart pricer and the
// checkout flow depend on. Every call is a fresh lookup; there is no caching.
type Reader interface {
	GetProduct(ctx context.Context, productID string) (*Product, error)
	GetProductsByIDs(ctx context.Context, productIDs []string) ([]Product, error)
	GetShop(ctx context.Context, shopID string) (*Shop, error)
}

type Repository interface {
	Reader
	GetShopByOwner(ctx context.Context, ownerID string) (*Shop, error)
	ListProductsByShop(ctx context.Context, shopID string) ([]Product, error)
	CreateProduct(ctx context.Context, p *Product) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, shop_id, name, description, price, quantity, created_at
         FROM products WHERE id = $1`,
		productID,
	).Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

// GetProductsByIDs returns the products that still exist among the given ids.
// Missing ids are simply absent from the result; callers re-key by id.
func (r *repo) GetProductsByIDs(ctx context.Context, productIDs []string) ([]Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, shop_id, name, description, price, quantity, created_at
         FROM products WHERE id = ANY($1)`,
		pq.Array(productIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return products, nil
}

func (r *repo) GetShop(ctx context.Context, shopID string) (*Shop, error) {
	var s Shop
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, address, latitude, longitude
         FROM shops WHERE id = $1`,
		shopID,
	).Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Latitude, &s.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select shop: %w", err)
	}
	return &s, nil
}

func (r *repo) GetShopByOwner(ctx context.Context, ownerID string) (*Shop, error) {
	var s Shop
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, address, latitude, longitude
         FROM shops WHERE owner_id = $1`,
		ownerID,
	).Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Latitude, &s.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select shop by owner: %w", err)
	}
	return &s, nil
}

func (r *repo) ListProductsByShop(ctx context.Context, shopID string) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, shop_id, name, description, price, quantity, created_at
         FROM products WHERE shop_id = $1 ORDER BY created_at DESC`,
		shopID,
	)
	if err != nil {
		return nil, fmt.Errorf("select shop products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return products, nil
}

func (r *repo) CreateProduct(ctx context.Context, p *Product) error {
	if p.Name == "" {
		return ErrMissingName
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Quantity < 0 {
		return ErrInvalidQuantity
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (id, shop_id, name, description, price, quantity)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING created_at`,
		p.ID, p.ShopID, p.Name, p.Description, p.Price, p.Quantity,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}
