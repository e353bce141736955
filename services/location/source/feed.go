package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/internal/utils"
)

// permission is the device's last reported OS permission state
type permission int

const (
	permissionUnknown permission = iota
	permissionGranted
	permissionDenied
)

type subscriber struct {
	samples chan models.LocationSample
	errs    chan error
}

// Feed is the push-based position source of one device. Devices report
// positions, permission changes and GPS failures; watchers subscribe.
type Feed struct {
	deviceID   string
	bufferSize int

	mu         sync.Mutex
	permission permission
	last       *models.LocationSample
	subs       map[uint64]*subscriber
	nextID     uint64
}

// NewFeed creates an empty feed. bufferSize bounds each subscriber's queue.
func NewFeed(deviceID string, bufferSize int) *Feed {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Feed{
		deviceID:   deviceID,
		bufferSize: bufferSize,
		subs:       make(map[uint64]*subscriber),
	}
}

// DeviceID returns the device the feed belongs to
func (f *Feed) DeviceID() string {
	return f.deviceID
}

// RequestPermission fails when the device has reported that location access is denied.
// A device that never reported its permission state is not blocked.
func (f *Feed) RequestPermission(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.permission == permissionDenied {
		return fmt.Errorf("%w: device %s", models.ErrPermissionDenied, f.deviceID)
	}
	return nil
}

// CurrentPosition returns the last reported position
func (f *Feed) CurrentPosition(ctx context.Context) (models.LocationSample, error) {
	if err := ctx.Err(); err != nil {
		return models.LocationSample{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.last == nil {
		return models.LocationSample{}, fmt.Errorf("%w: no position reported for device %s", models.ErrPositionUnavailable, f.deviceID)
	}
	return *f.last, nil
}

// Subscribe registers a watcher. The error channel receives at most one
// value, after which the watcher is detached.
func (f *Feed) Subscribe() (<-chan models.LocationSample, <-chan error, func()) {
	sub := &subscriber{
		samples: make(chan models.LocationSample, f.bufferSize),
		errs:    make(chan error, 1),
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = sub
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}

	return sub.samples, sub.errs, cancel
}

// Report records a position and fans it out to watchers. Watchers whose
// queue is full miss the sample.
func (f *Feed) Report(sample models.LocationSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}
	sample = utils.WithGeohash(sample)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.permission == permissionDenied {
		return fmt.Errorf("%w: device %s reported a position while access is denied", models.ErrPermissionDenied, f.deviceID)
	}

	if f.last == nil || sample.TimestampMs >= f.last.TimestampMs {
		last := sample
		f.last = &last
	}

	for _, sub := range f.subs {
		select {
		case sub.samples <- sample:
		default:
		}
	}
	return nil
}

// SetPermission records the device's permission state. Revoking access
// ends every active watch with ErrPermissionDenied.
func (f *Feed) SetPermission(granted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if granted {
		f.permission = permissionGranted
		return
	}

	f.permission = permissionDenied
	f.failLocked(fmt.Errorf("%w: device %s revoked location access", models.ErrPermissionDenied, f.deviceID))
}

// Fail ends every active watch with err
func (f *Feed) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failLocked(err)
}

func (f *Feed) failLocked(err error) {
	for id, sub := range f.subs {
		select {
		case sub.errs <- err:
		default:
		}
		delete(f.subs, id)
	}
}

// Watchers returns the number of active subscriptions
func (f *Feed) Watchers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
