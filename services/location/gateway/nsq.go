package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/kidtrack/internal/pkg/circuitbreaker"
	"github.com/piresc/kidtrack/internal/pkg/constants"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

// Publisher is the part of the NSQ producer the gateway needs
type Publisher interface {
	Publish(topic string, message interface{}) error
}

// NSQGateway publishes tracking events to NSQ. A circuit breaker stops
// publishing to an unreachable nsqd from slowing down sample handling.
type NSQGateway struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
}

// NewNSQGateway creates a gateway around publisher
func NewNSQGateway(publisher Publisher) *NSQGateway {
	return &NSQGateway{
		publisher: publisher,
		breaker:   circuitbreaker.New(circuitbreaker.DefaultConfig("nsq-publisher"), nil),
	}
}

// PublishSample publishes a recorded sample to location.sample
func (g *NSQGateway) PublishSample(ctx context.Context, event models.SampleEvent) error {
	err := g.publish(ctx, constants.TopicLocationSample, event)
	if err != nil {
		logger.Warn("Failed to publish location sample",
			logger.String("device_id", event.DeviceID),
			logger.Err(err))
		return fmt.Errorf("failed to publish location sample: %w", err)
	}
	return nil
}

// PublishGeofenceAlert publishes a boundary crossing to geofence.alert
func (g *NSQGateway) PublishGeofenceAlert(ctx context.Context, alert models.GeofenceAlert) error {
	err := g.publish(ctx, constants.TopicGeofenceAlert, alert)
	if err != nil {
		logger.Error("Failed to publish geofence alert",
			logger.String("device_id", alert.DeviceID),
			logger.String("event", string(alert.Event)),
			logger.Err(err))
		return fmt.Errorf("failed to publish geofence alert: %w", err)
	}

	logger.Info("Published geofence alert",
		logger.String("device_id", alert.DeviceID),
		logger.String("guardian_id", alert.GuardianID),
		logger.String("event", string(alert.Event)),
		logger.Float64("distance_meters", alert.DistanceMeters))
	return nil
}

// CheckHealth fails while the publisher's circuit is open
func (g *NSQGateway) CheckHealth(ctx context.Context) error {
	return g.breaker.CheckHealth(ctx)
}

func (g *NSQGateway) publish(ctx context.Context, topic string, message interface{}) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.publisher.Publish(topic, message)
	})
}
