package events

import "time"

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OrderItemEvent struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderCreated is published after a checkout commits. It carries everything
// the delivery simulation needs: the order lines plus the pickup (shop) and
// drop-off (customer) coordinates.
type OrderCreated struct {
	EventType   string           `json:"eventType"`
	OrderID     string           `json:"orderId"`
	UserID      string           `json:"userId"`
	ShopID      string           `json:"shopId"`
	Items       []OrderItemEvent `json:"items"`
	TotalAmount float64          `json:"totalAmount"`
	Pickup      Coordinates      `json:"pickup"`
	Dropoff     Coordinates      `json:"dropoff"`
	Timestamp   time.Time        `json:"timestamp"`
}

type OrderDelivered struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}
