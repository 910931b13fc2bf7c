package delivery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// StatusUpdater is the slice of the order repository the simulation needs.
type StatusUpdater interface {
	MarkOutForDelivery(ctx context.Context, orderID string) error
	MarkDelivered(ctx context.Context, orderID string) error
}

type DeliveredPublisher interface {
	PublishOrderDelivered(ctx context.Context, orderID, userID string) error
}

// Simulator flies a drone from shop to customer for each order: the order
// goes OutForDelivery, the drone steps through the planned waypoints on a
// timer, and on arrival the order is Delivered.
type Simulator struct {
	orders    StatusUpdater
	publisher DeliveredPublisher
	speedKMH  float64
	stepEvery time.Duration
	logger    *zap.Logger
}

func NewSimulator(orders StatusUpdater, publisher DeliveredPublisher, speedKMH float64, stepEvery time.Duration, logger *zap.Logger) *Simulator {
	return &Simulator{
		orders:    orders,
		publisher: publisher,
		speedKMH:  speedKMH,
		stepEvery: stepEvery,
		logger:    logger,
	}
}

func (s *Simulator) Deliver(ctx context.Context, orderID, userID string, from, to Point) error {
	if err := s.orders.MarkOutForDelivery(ctx, orderID); err != nil {
		return fmt.Errorf("mark out for delivery: %w", err)
	}

	flight := PlanFlight(orderID, from, to, s.speedKMH)
	s.logger.Info("drone dispatched",
		zap.String("orderId", orderID),
		zap.Float64("distanceKm", flight.DistanceKM),
		zap.Duration("eta", flight.Duration),
	)

	for _, wp := range flight.Waypoints {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.stepEvery):
		}
		s.logger.Debug("drone position",
			zap.String("orderId", orderID),
			zap.Float64("lat", wp.Lat),
			zap.Float64("lng", wp.Lng),
		)
	}

	if err := s.orders.MarkDelivered(ctx, orderID); err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}

	if err := s.publisher.PublishOrderDelivered(ctx, orderID, userID); err != nil {
		return fmt.Errorf("publish delivered: %w", err)
	}

	s.logger.Info("order delivered", zap.String("orderId", orderID))
	return nil
}
