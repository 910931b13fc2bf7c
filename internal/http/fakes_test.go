package http

import (
	"context"

	"github.com/ishiply/storefront/internal/cart"
	"github.com/ishiply/storefront/internal/catalog"
	"github.com/ishiply/storefront/internal/events"
	"github.com/ishiply/storefront/internal/order"
	"github.com/ishiply/storefront/internal/session"
	"github.com/ishiply/storefront/internal/users"
)

type fakeCartStore struct {
	carts   map[string]*cart.Cart
	getErr  error
	saveErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string]*cart.Cart{}}
}

func (f *fakeCartStore) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if c, ok := f.carts[sessionID]; ok {
		return c, nil
	}
	return cart.New(), nil
}

func (f *fakeCartStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.carts[sessionID] = c
	return nil
}

func (f *fakeCartStore) Clear(ctx context.Context, sessionID string) error {
	delete(f.carts, sessionID)
	return nil
}

type fakeCatalog struct {
	products map[string]catalog.Product
	shops    map[string]catalog.Shop
	byOwner  map[string]catalog.Shop
	created  []*catalog.Product
	err      error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[string]catalog.Product{},
		shops:    map[string]catalog.Shop{},
		byOwner:  map[string]catalog.Shop{},
	}
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID string) (*catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.products[productID]; ok {
		return &p, nil
	}
	return nil, catalog.ErrNotFound
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
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.shops[shopID]; ok {
		return &s, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) GetShopByOwner(ctx context.Context, ownerID string) (*catalog.Shop, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.byOwner[ownerID]; ok {
		return &s, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) ListProductsByShop(ctx context.Context, shopID string) ([]catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []catalog.Product
	for _, p := range f.products {
		if p.ShopID == shopID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, p *catalog.Product) error {
	if f.err != nil {
		return f.err
	}
	if p.Name == "" {
		return catalog.ErrMissingName
	}
	if p.Price < 0 {
		return catalog.ErrInvalidPrice
	}
	if p.Quantity < 0 {
		return catalog.ErrInvalidQuantity
	}
	p.ID = "prod-" + p.Name
	f.created = append(f.created, p)
	f.products[p.ID] = *p
	return nil
}

type fakeOrderRepo struct {
	createFunc   func(ctx context.Context, o *order.Order, lines []order.Line) error
	purchaseFunc func(ctx context.Context, userID string, lines []order.Line) error
	getByIDFunc  func(ctx context.Context, orderID string) (*order.Order, error)
	listFunc     func(ctx context.Context, userID string) ([]order.Order, error)
	createCalls  int
}

func (f *fakeOrderRepo) CreateFromCart(ctx context.Context, o *order.Order, lines []order.Line) error {
	f.createCalls++
	if f.createFunc != nil {
		return f.createFunc(ctx, o, lines)
	}
	o.ID = "order-1"
	return nil
}

func (f *fakeOrderRepo) RecordPurchase(ctx context.Context, userID string, lines []order.Line) error {
	if f.purchaseFunc != nil {
		return f.purchaseFunc(ctx, userID, lines)
	}
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, userID)
	}
	return nil, nil
}

func (f *fakeOrderRepo) MarkOutForDelivery(ctx context.Context, orderID string) error { return nil }
func (f *fakeOrderRepo) MarkDelivered(ctx context.Context, orderID string) error      { return nil }

type fakeUsers struct {
	profiles  map[string]users.Profile
	verifyErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{profiles: map[string]users.Profile{}}
}

func (f *fakeUsers) GetByID(ctx context.Context, userID string) (*users.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return &p, nil
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) VerifyCredentials(ctx context.Context, email, password string) (*users.Profile, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	for _, p := range f.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, users.ErrInvalidCredentials
}

type fakeSessions struct {
	sessions map[string]string
	nextID   string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]string{}, nextID: "sess-1"}
}

func (f *fakeSessions) Create(ctx context.Context, userID string) (string, error) {
	f.sessions[f.nextID] = userID
	return f.nextID, nil
}

func (f *fakeSessions) Resolve(ctx context.Context, sessionID string) (string, error) {
	if userID, ok := f.sessions[sessionID]; ok {
		return userID, nil
	}
	return "", session.ErrNoSession
}

func (f *fakeSessions) Destroy(ctx context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

type fakePublisher struct {
	created []string
	pickup  events.Coordinates
	dropoff events.Coordinates
	err     error
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, o *order.Order, pickup, dropoff events.Coordinates) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, o.ID)
	f.pickup = pickup
	f.dropoff = dropoff
	return nil
}
