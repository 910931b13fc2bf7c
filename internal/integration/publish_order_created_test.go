package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ishiply/storefront/internal/events"
	"github.com/ishiply/storefront/internal/order"
	"github.com/ishiply/storefront/internal/testutil"
)

func TestPublishOrderCreated_RoundTrip(t *testing.T) {
	conn, cleanup := testutil.StartRabbitMQ(t)
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pub, err := events.NewPublisher(conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	o := &order.Order{
		ID:          "order-1",
		UserID:      "user-1",
		ShopID:      "shop-1",
		TotalAmount: 25.00,
		Items: []order.Item{
			{ProductID: "product-a", Quantity: 2, Price: 10.00},
			{ProductID: "product-b", Quantity: 1, Price: 5.00},
		},
	}
	pickup := events.Coordinates{Latitude: 55.68, Longitude: 12.57}
	dropoff := events.Coordinates{Latitude: 55.70, Longitude: 12.50}

	require.NoError(t, pub.PublishOrderCreated(ctx, o, pickup, dropoff))

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	deliveries, err := ch.Consume(events.OrderCreatedQueue, "", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case msg := <-deliveries:
		require.Equal(t, "application/json", msg.ContentType)

		var ev events.OrderCreated
		require.NoError(t, json.Unmarshal(msg.Body, &ev))
		require.Equal(t, "OrderCreated", ev.EventType)
		require.Equal(t, "order-1", ev.OrderID)
		require.Equal(t, "user-1", ev.UserID)
		require.Equal(t, 25.00, ev.TotalAmount)
		require.Len(t, ev.Items, 2)
		require.Equal(t, pickup, ev.Pickup)
		require.Equal(t, dropoff, ev.Dropoff)
		require.False(t, ev.Timestamp.IsZero())
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for OrderCreated message")
	}
}

func TestPublishOrderDelivered_RoundTrip(t *testing.T) {
	conn, cleanup := testutil.StartRabbitMQ(t)
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pub, err := events.NewPublisher(conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	require.NoError(t, pub.PublishOrderDelivered(ctx, "order-1", "user-1"))

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	deliveries, err := ch.Consume(events.OrderDeliveredQueue, "", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case msg := <-deliveries:
		var ev events.OrderDelivered
		require.NoError(t, json.Unmarshal(msg.Body, &ev))
		require.Equal(t, "OrderDelivered", ev.EventType)
		require.Equal(t, "order-1", ev.OrderID)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for OrderDelivered message")
	}
}
