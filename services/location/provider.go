package location

import (
	"context"
	"time"

	"github.com/piresc/kidtrack/internal/pkg/models"
)

// Source is the raw position feed of a single device
type Source interface {
	RequestPermission(ctx context.Context) error
	CurrentPosition(ctx context.Context) (models.LocationSample, error)
	// Subscribe streams raw samples until cancel is called. A value on the
	// error channel ends the stream.
	Subscribe() (samples <-chan models.LocationSample, errs <-chan error, cancel func())
}

// WatchOptions holds the emit thresholds of a position watch. A sample is
// emitted when either threshold is crossed since the last emitted sample.
type WatchOptions struct {
	Interval          time.Duration
	MinDistanceMeters float64
}

// Subscription is a running position watch
type Subscription interface {
	// Cancel stops delivery. Safe to call more than once.
	Cancel()
	// Done is closed once no more callbacks will run
	Done() <-chan struct{}
}

// LocationProvider wraps a Source with permission checks and throttling
type LocationProvider interface {
	RequestPermission(ctx context.Context) error
	GetCurrentPosition(ctx context.Context) (models.LocationSample, error)
	WatchPosition(ctx context.Context, opts WatchOptions, onSample func(models.LocationSample), onError func(error)) (Subscription, error)
}
