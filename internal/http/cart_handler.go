package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ishiply/storefront/internal/cart"
)

type CartHandler struct {
	carts  cart.Store
	pricer *cart.Pricer
}

func NewCartHandler(carts cart.Store, pricer *cart.Pricer) *CartHandler {
	return &CartHandler{carts: carts, pricer: pricer}
}

// GetCart returns the priced view of the session cart. Lines whose product
// was deleted are omitted; the grand total covers what is shown.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	priced, err := h.pricer.PriceCart(ctx, c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to price cart")
		return
	}

	writeJSON(w, http.StatusOK, priced)
}

// UpdateCart applies a batch of quantity edits, the same shape the cart page
// posts: every submitted quantity overwrites, zero removes the line.
func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	var body struct {
		Quantities map[string]int `json:"quantities"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(body.Quantities) == 0 {
		writeError(w, http.StatusBadRequest, "no quantities given")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	for productID, qty := range body.Quantities {
		if err := c.SetLine(productID, qty); err != nil {
			if errors.Is(err, cart.ErrNegativeQuantity) {
				writeError(w, http.StatusBadRequest, "quantity must be zero or positive")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to update cart")
			return
		}
	}

	if err := h.carts.Save(ctx, sessionID, c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	priced, err := h.pricer.PriceCart(ctx, c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to price cart")
		return
	}

	writeJSON(w, http.StatusOK, priced)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.carts.Clear(ctx, sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cart emptied"})
}
