package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ishiply/storefront/internal/catalog"
	"github.com/ishiply/storefront/internal/events"
	"github.com/ishiply/storefront/internal/order"
	"github.com/ishiply/storefront/internal/users"
)

// CheckoutPublisher announces committed orders to the delivery side.
type CheckoutPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order, pickup, dropoff events.Coordinates) error
}

type CheckoutHandler struct {
	engine        *order.Engine
	users         users.Repository
	catalog       catalog.Reader
	publisher     CheckoutPublisher
	defaultShopID string
	logger        *zap.Logger
}

func NewCheckoutHandler(engine *order.Engine, u users.Repository, c catalog.Reader, pub CheckoutPublisher, defaultShopID string, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		engine:        engine,
		users:         u,
		catalog:       c,
		publisher:     pub,
		defaultShopID: defaultShopID,
		logger:        logger,
	}
}

// Checkout converts the session cart into an order. Customer name and
// address default to the user's profile when the request leaves them blank,
// matching the prefilled checkout form.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, userID := sessionFromContext(r.Context())

	var body struct {
		ShopID          string `json:"shopId"`
		CustomerName    string `json:"customerName"`
		CustomerAddress string `json:"customerAddress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	shopID := body.ShopID
	if shopID == "" {
		shopID = h.defaultShopID
	}
	if shopID == "" {
		writeError(w, http.StatusBadRequest, "missing shopId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profile, err := h.users.GetByID(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	shop, err := h.catalog.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shop not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load shop")
		return
	}

	customerName := body.CustomerName
	if customerName == "" {
		customerName = profile.Name
	}
	customerAddress := body.CustomerAddress
	if customerAddress == "" {
		customerAddress = profile.Address
	}

	o, err := h.engine.Checkout(ctx, sessionID, userID, shopID, customerName, customerAddress)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			writeError(w, http.StatusBadRequest, "your cart is empty")
			return
		}
		var ce *order.CreationError
		if errors.As(err, &ce) {
			h.logger.Error("order creation failed", zap.String("step", ce.Step), zap.Error(ce.Err))
			writeError(w, http.StatusInternalServerError, "failed to create order")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	// The order is committed; a publish failure only delays the drone.
	pickup := events.Coordinates{Latitude: shop.Latitude, Longitude: shop.Longitude}
	dropoff := events.Coordinates{Latitude: profile.Latitude, Longitude: profile.Longitude}
	if err := h.publisher.PublishOrderCreated(ctx, o, pickup, dropoff); err != nil {
		h.logger.Warn("publish order.created", zap.String("orderId", o.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, o)
}

// Purchase is the direct flow from the cart page: record purchase rows,
// decrement stock, empty the cart. No order or delivery involved.
func (h *CheckoutHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	sessionID, userID := sessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.engine.Purchase(ctx, sessionID, userID); err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			writeError(w, http.StatusBadRequest, "your cart is empty")
			return
		}
		h.logger.Error("purchase failed", zap.String("userId", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to process purchase")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "purchase successful"})
}
