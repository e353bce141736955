package usecase

import (
	"context"
	"fmt"

	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/internal/utils"
	"github.com/piresc/kidtrack/services/location/provider"
)

// GetCurrentLocation returns the device's latest position
func (uc *LocationUC) GetCurrentLocation(ctx context.Context, deviceID string) (models.LocationSample, error) {
	feed, ok := uc.registry.Lookup(deviceID)
	if !ok {
		return models.LocationSample{}, fmt.Errorf("%w: device %s has not reported", models.ErrPositionUnavailable, deviceID)
	}
	return provider.NewProvider(feed).GetCurrentPosition(ctx)
}

// GetHistory lists the device's recorded samples in ascending time order
func (uc *LocationUC) GetHistory(ctx context.Context, deviceID string, query models.HistoryQuery) ([]models.LocationSample, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}
	return uc.history.List(ctx, deviceID, query)
}

// SaveToHistory records a sample outside of a tracking session
func (uc *LocationUC) SaveToHistory(ctx context.Context, deviceID string, sample models.LocationSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}
	return uc.history.Append(ctx, deviceID, utils.WithGeohash(sample))
}

// ReportPosition feeds a position reported by the device to its watchers
func (uc *LocationUC) ReportPosition(ctx context.Context, deviceID string, sample models.LocationSample) error {
	return uc.registry.Get(deviceID).Report(sample)
}

// UpdatePermission records the device's OS location permission
func (uc *LocationUC) UpdatePermission(ctx context.Context, deviceID string, granted bool) error {
	uc.registry.Get(deviceID).SetPermission(granted)

	logger.Info("Device location permission updated",
		logger.String("device_id", deviceID),
		logger.Bool("granted", granted))
	return nil
}

// ReportFailure ends the device's watches with a position error
func (uc *LocationUC) ReportFailure(ctx context.Context, deviceID string, reason string) error {
	if reason == "" {
		reason = "device reported a location failure"
	}
	uc.registry.Get(deviceID).Fail(fmt.Errorf("%w: %s", models.ErrPositionUnavailable, reason))

	logger.Warn("Device reported a location failure",
		logger.String("device_id", deviceID),
		logger.String("reason", reason))
	return nil
}

// HandleReport applies a device report. Permission changes are applied
// before the position so a grant and a sample can arrive together.
func (uc *LocationUC) HandleReport(ctx context.Context, report models.DeviceReport) error {
	if report.DeviceID == "" {
		return fmt.Errorf("%w: device_id is required", models.ErrInvalidLocation)
	}
	if report.PermissionGranted == nil && report.Sample == nil && report.Error == "" {
		return fmt.Errorf("%w: empty report", models.ErrInvalidLocation)
	}

	if report.PermissionGranted != nil {
		if err := uc.UpdatePermission(ctx, report.DeviceID, *report.PermissionGranted); err != nil {
			return err
		}
	}
	if report.Sample != nil {
		if err := uc.ReportPosition(ctx, report.DeviceID, *report.Sample); err != nil {
			return err
		}
	}
	if report.Error != "" {
		return uc.ReportFailure(ctx, report.DeviceID, report.Error)
	}
	return nil
}

func validateQuery(query models.HistoryQuery) error {
	if query.FromMs < 0 || query.ToMs < 0 {
		return fmt.Errorf("%w: from and to must not be negative", models.ErrInvalidQuery)
	}
	if query.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", models.ErrInvalidQuery)
	}
	if query.ToMs > 0 && query.FromMs > query.ToMs {
		return fmt.Errorf("%w: from is after to", models.ErrInvalidQuery)
	}
	return nil
}
