package gateway

import (
	"context"

	"github.com/piresc/kidtrack/internal/pkg/constants"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

// Broadcaster pushes an event to every live client on a topic
type Broadcaster interface {
	Broadcast(topic, event string, data interface{}) (int, error)
}

// LiveGateway pushes tracking events to guardians connected to a
// device's live stream. The device ID is the topic.
type LiveGateway struct {
	broadcaster Broadcaster
}

// NewLiveGateway creates a gateway around broadcaster
func NewLiveGateway(broadcaster Broadcaster) *LiveGateway {
	return &LiveGateway{broadcaster: broadcaster}
}

// PublishSample pushes a recorded sample to the device's live stream
func (g *LiveGateway) PublishSample(ctx context.Context, event models.SampleEvent) error {
	sent, err := g.broadcaster.Broadcast(event.DeviceID, constants.EventLocationSample, event)
	if err != nil {
		return err
	}
	if sent > 0 {
		logger.Debug("Pushed location sample to live clients",
			logger.String("device_id", event.DeviceID),
			logger.Int("clients", sent))
	}
	return nil
}

// PublishGeofenceAlert pushes a boundary crossing to the device's live stream
func (g *LiveGateway) PublishGeofenceAlert(ctx context.Context, alert models.GeofenceAlert) error {
	_, err := g.broadcaster.Broadcast(alert.DeviceID, constants.EventGeofenceAlert, alert)
	return err
}
