package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ishiply/storefront/internal/catalog"
)

type CatalogHandler struct {
	repo catalog.Repository
}

func NewCatalogHandler(repo catalog.Repository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

func (h *CatalogHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopId")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shopId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	shop, err := h.repo.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shop not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load shop")
		return
	}

	writeJSON(w, http.StatusOK, shop)
}

func (h *CatalogHandler) ListShopProducts(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopId")
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shopId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := h.repo.ListProductsByShop(ctx, shopID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// CreateProduct adds a product to the calling user's shop. Users without a
// shop cannot list products.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	_, userID := sessionFromContext(r.Context())

	var body struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Quantity    int     `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shop, err := h.repo.GetShopByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "create a shop first")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load shop")
		return
	}

	p := &catalog.Product{
		ShopID:      shop.ID,
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Quantity:    body.Quantity,
	}
	if err := h.repo.CreateProduct(ctx, p); err != nil {
		switch {
		case errors.Is(err, catalog.ErrMissingName),
			errors.Is(err, catalog.ErrInvalidPrice),
			errors.Is(err, catalog.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create product")
		}
		return
	}

	writeJSON(w, http.StatusCreated, p)
}
