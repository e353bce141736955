package provider

import (
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/internal/utils"
	"github.com/piresc/kidtrack/services/location"
)

// Throttle decides which raw samples a watch emits. A sample passes when the
// interval has elapsed OR the device moved at least MinDistanceMeters since
// the last emitted sample. Samples older than the last emitted one never pass.
type Throttle struct {
	intervalMs  int64
	minDistance float64
	last        *models.LocationSample
}

// NewThrottle creates a throttle. A non-positive threshold is disabled; with
// both disabled every in-order sample passes.
func NewThrottle(opts location.WatchOptions) *Throttle {
	return &Throttle{
		intervalMs:  opts.Interval.Milliseconds(),
		minDistance: opts.MinDistanceMeters,
	}
}

// Admit reports whether sample should be emitted and records it if so
func (t *Throttle) Admit(sample models.LocationSample) bool {
	if t.last == nil {
		t.emit(sample)
		return true
	}

	if sample.TimestampMs < t.last.TimestampMs {
		return false
	}

	if t.intervalMs <= 0 && t.minDistance <= 0 {
		t.emit(sample)
		return true
	}

	elapsed := t.intervalMs > 0 && sample.TimestampMs-t.last.TimestampMs >= t.intervalMs
	moved := t.minDistance > 0 &&
		utils.DistanceMeters(utils.PointOf(*t.last), utils.PointOf(sample)) >= t.minDistance

	if elapsed || moved {
		t.emit(sample)
		return true
	}
	return false
}

func (t *Throttle) emit(sample models.LocationSample) {
	t.last = &sample
}
