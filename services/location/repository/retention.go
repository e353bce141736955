package repository

import (
	"fmt"

	"github.com/piresc/kidtrack/internal/pkg/models"
)

// splitExpired separates samples older than cutoffMs, which retention would
// delete in the same write
func splitExpired(samples []models.LocationSample, cutoffMs int64) ([]models.LocationSample, int) {
	kept := make([]models.LocationSample, 0, len(samples))
	for _, sample := range samples {
		if sample.TimestampMs < cutoffMs {
			continue
		}
		kept = append(kept, sample)
	}
	return kept, len(samples) - len(kept)
}

func expiredError(expired, total int, cutoffMs int64) error {
	return fmt.Errorf("%w: %d of %d samples before %d", models.ErrSampleExpired, expired, total, cutoffMs)
}
