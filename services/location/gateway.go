package location

import (
	"context"

	"github.com/piresc/kidtrack/internal/pkg/models"
)

// LocationGW publishes tracking events to downstream consumers
type LocationGW interface {
	PublishSample(ctx context.Context, event models.SampleEvent) error
	PublishGeofenceAlert(ctx context.Context, alert models.GeofenceAlert) error
}
