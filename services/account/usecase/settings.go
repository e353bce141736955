package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

const (
	minIntervalMinutes = 1
	maxIntervalMinutes = 1440
	minRadiusMeters    = 10
	maxRadiusMeters    = 100000
)

// GetSettings returns the guardian's settings, or the defaults when none are saved
func (uc *AccountUC) GetSettings(ctx context.Context, guardianID string) (*models.Settings, error) {
	return uc.settingsRepo.GetSettings(ctx, guardianID)
}

// SaveSettings validates and stores the guardian's settings
func (uc *AccountUC) SaveSettings(ctx context.Context, guardianID string, settings *models.Settings) (*models.Settings, error) {
	if err := uc.validateSettings(settings); err != nil {
		return nil, err
	}

	settings.UpdatedAt = time.Now().UTC()
	if err := uc.settingsRepo.SaveSettings(ctx, guardianID, settings); err != nil {
		return nil, err
	}

	logger.Info("Guardian settings saved",
		logger.String("guardian_id", guardianID),
		logger.String("tracking_interval_minutes", settings.TrackingIntervalMinutes),
		logger.Bool("geofencing_enabled", settings.GeofencingEnabled))
	return settings, nil
}

func (uc *AccountUC) validateSettings(settings *models.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", models.ErrInvalidSettings)
	}
	if err := uc.validate.Struct(settings); err != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalidSettings, describe(err))
	}

	interval, err := settings.TrackingInterval()
	if err != nil {
		return fmt.Errorf("%w: tracking interval must be a number", models.ErrInvalidSettings)
	}
	if interval < minIntervalMinutes*time.Minute || interval > maxIntervalMinutes*time.Minute {
		return fmt.Errorf("%w: tracking interval must be between %d and %d minutes",
			models.ErrInvalidSettings, minIntervalMinutes, maxIntervalMinutes)
	}

	radius, err := settings.GeofenceRadius()
	if err != nil {
		return fmt.Errorf("%w: geofence radius must be a number", models.ErrInvalidSettings)
	}
	if radius < minRadiusMeters || radius > maxRadiusMeters {
		return fmt.Errorf("%w: geofence radius must be between %d and %d meters",
			models.ErrInvalidSettings, minRadiusMeters, maxRadiusMeters)
	}
	return nil
}

// describe turns validator errors into a short field list
func describe(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return err.Error()
	}

	msg := ""
	for i, fe := range validationErrs {
		if i > 0 {
			msg += ", "
		}
		msg += fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
	return msg
}
