package gateway

import (
	"context"
	"errors"

	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/location"
)

// MultiGateway fans events out to several gateways. Every gateway is
// tried and the failures are joined.
type MultiGateway struct {
	gateways []location.LocationGW
}

// NewMultiGateway creates a fan-out over the non-nil gateways
func NewMultiGateway(gateways ...location.LocationGW) *MultiGateway {
	m := &MultiGateway{}
	for _, gw := range gateways {
		if gw != nil {
			m.gateways = append(m.gateways, gw)
		}
	}
	return m
}

// PublishSample publishes event to every gateway
func (m *MultiGateway) PublishSample(ctx context.Context, event models.SampleEvent) error {
	var errs []error
	for _, gw := range m.gateways {
		if err := gw.PublishSample(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishGeofenceAlert publishes alert to every gateway
func (m *MultiGateway) PublishGeofenceAlert(ctx context.Context, alert models.GeofenceAlert) error {
	var errs []error
	for _, gw := range m.gateways {
		if err := gw.PublishGeofenceAlert(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
