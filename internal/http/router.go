package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ishiply/storefront/internal/session"
)

type Handlers struct {
	Auth     *AuthHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrderHandler
	Catalog  *CatalogHandler
	Sessions session.Manager
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", healthHandler)

	r.Post("/api/login", h.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(h.Sessions))

		r.Post("/api/logout", h.Auth.Logout)

		r.Get("/api/shops/{shopId}", h.Catalog.GetShop)
		r.Get("/api/shops/{shopId}/products", h.Catalog.ListShopProducts)
		r.Get("/api/products/{productId}", h.Catalog.GetProduct)
		r.Post("/api/products", h.Catalog.CreateProduct)

		r.Get("/api/cart", h.Cart.GetCart)
		r.Put("/api/cart", h.Cart.UpdateCart)
		r.Delete("/api/cart", h.Cart.ClearCart)
		r.Post("/api/cart/purchase", h.Checkout.Purchase)

		r.Post("/api/checkout", h.Checkout.Checkout)

		r.Get("/api/orders", h.Orders.ListOrders)
		r.Get("/api/orders/{orderId}", h.Orders.GetOrder)
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
