package delivery

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/ishiply/storefront/internal/events"
)

// StartOrderCreatedConsumer consumes order.created and runs the drone
// simulation for each order. Each delivery flies in its own goroutine so a
// long flight does not block the queue.
func StartOrderCreatedConsumer(ctx context.Context, conn *amqp.Connection, sim *Simulator, logger *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		events.OrderCreatedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(
		events.OrderCreatedQueue,
		"storefront-delivery", // consumer tag
		false,                 // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("stopping order.created consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("messages channel closed")
					return
				}

				ev, err := decodeOrderCreated(msg.Body)
				if err != nil {
					logger.Error("decode order.created", zap.Error(err))
					_ = msg.Nack(false, false) // drop for now
					continue
				}
				_ = msg.Ack(false)

				go func(ev events.OrderCreated) {
					from := Point{Lat: ev.Pickup.Latitude, Lng: ev.Pickup.Longitude}
					to := Point{Lat: ev.Dropoff.Latitude, Lng: ev.Dropoff.Longitude}
					if err := sim.Deliver(ctx, ev.OrderID, ev.UserID, from, to); err != nil {
						logger.Error("deliver order", zap.String("orderId", ev.OrderID), zap.Error(err))
					}
				}(ev)
			}
		}
	}()

	return nil
}

func decodeOrderCreated(body []byte) (events.OrderCreated, error) {
	var ev events.OrderCreated
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal: %w", err)
	}
	if ev.OrderID == "" {
		return ev, fmt.Errorf("missing orderId")
	}
	return ev, nil
}
