package location

import (
	"context"

	"github.com/piresc/kidtrack/internal/pkg/models"
)

// LocationUC defines the interface for location business logic
type LocationUC interface {
	// Position reads
	GetCurrentLocation(ctx context.Context, deviceID string) (models.LocationSample, error)

	// Tracking sessions
	StartTracking(ctx context.Context, deviceID, guardianID string) (models.SessionStatus, error)
	StopTracking(ctx context.Context, deviceID string) (models.SessionStatus, error)
	SessionStatus(ctx context.Context, deviceID string) (models.SessionStatus, error)

	// History
	GetHistory(ctx context.Context, deviceID string, query models.HistoryQuery) ([]models.LocationSample, error)
	SaveToHistory(ctx context.Context, deviceID string, sample models.LocationSample) error

	// Device reports
	ReportPosition(ctx context.Context, deviceID string, sample models.LocationSample) error
	UpdatePermission(ctx context.Context, deviceID string, granted bool) error
	ReportFailure(ctx context.Context, deviceID string, reason string) error
	HandleReport(ctx context.Context, report models.DeviceReport) error

	// Shutdown stops every active session
	Shutdown(ctx context.Context) error
}
