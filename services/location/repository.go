package location

import (
	"context"

	"github.com/piresc/kidtrack/internal/pkg/models"
)

// HistoryRepo persists location samples per device. List returns samples in
// ascending timestamp order.
type HistoryRepo interface {
	Append(ctx context.Context, deviceID string, sample models.LocationSample) error
	List(ctx context.Context, deviceID string, query models.HistoryQuery) ([]models.LocationSample, error)
}

// BatchHistoryRepo is a HistoryRepo that can write several samples in one round trip
type BatchHistoryRepo interface {
	HistoryRepo
	AppendBatch(ctx context.Context, deviceID string, samples []models.LocationSample) error
}

// SettingsReader gives tracking access to a guardian's saved settings
type SettingsReader interface {
	GetSettings(ctx context.Context, guardianID string) (*models.Settings, error)
}
