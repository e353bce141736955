package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/location"
)

// Provider implements location.LocationProvider over a device Source
type Provider struct {
	source location.Source
}

// NewProvider creates a provider for source
func NewProvider(source location.Source) *Provider {
	return &Provider{source: source}
}

// RequestPermission asks the source for location access
func (p *Provider) RequestPermission(ctx context.Context) error {
	if err := p.source.RequestPermission(ctx); err != nil {
		if errors.Is(err, models.ErrPermissionDenied) {
			return err
		}
		return fmt.Errorf("%w: %v", models.ErrPermissionDenied, err)
	}
	return nil
}

// GetCurrentPosition performs a one-shot read, requesting permission first
func (p *Provider) GetCurrentPosition(ctx context.Context) (models.LocationSample, error) {
	if err := p.RequestPermission(ctx); err != nil {
		return models.LocationSample{}, err
	}

	sample, err := p.source.CurrentPosition(ctx)
	if err != nil {
		if errors.Is(err, models.ErrPositionUnavailable) {
			return models.LocationSample{}, err
		}
		return models.LocationSample{}, fmt.Errorf("%w: %v", models.ErrPositionUnavailable, err)
	}
	return sample, nil
}

// WatchPosition starts a throttled watch. onSample is called from a single
// goroutine in non-decreasing timestamp order. If the source fails, onError
// receives an ErrSubscription and the watch ends. The watch outlives ctx;
// only Cancel ends it.
func (p *Provider) WatchPosition(
	ctx context.Context,
	opts location.WatchOptions,
	onSample func(models.LocationSample),
	onError func(error),
) (location.Subscription, error) {
	if onSample == nil {
		return nil, errors.New("onSample callback is required")
	}
	if err := p.RequestPermission(ctx); err != nil {
		return nil, err
	}

	samples, errs, release := p.source.Subscribe()
	sub := newSubscription(release)

	go sub.run(samples, errs, NewThrottle(opts), onSample, onError)

	return sub, nil
}
