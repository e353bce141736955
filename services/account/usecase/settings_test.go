package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/account/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSettings := mocks.NewMockSettingsRepo(ctrl)
	uc := NewAccountUC(mocks.NewMockAccountRepo(ctrl), mockSettings, testConfig())

	mockSettings.EXPECT().GetSettings(gomock.Any(), "guardian-1").Return(models.DefaultSettings(), nil)

	settings, err := uc.GetSettings(context.Background(), "guardian-1")
	require.NoError(t, err)
	assert.Equal(t, "5", settings.TrackingIntervalMinutes)
	assert.Equal(t, "100", settings.GeofenceRadiusMeters)
	assert.True(t, settings.NotificationsEnabled)
}

func TestSaveSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSettings := mocks.NewMockSettingsRepo(ctrl)
	uc := NewAccountUC(mocks.NewMockAccountRepo(ctrl), mockSettings, testConfig())
	ctx := context.Background()

	t.Run("valid settings are stamped and stored", func(t *testing.T) {
		settings := models.DefaultSettings()
		settings.TrackingIntervalMinutes = "15"
		settings.GeofenceCenter = &models.GeoPoint{Latitude: -6.2, Longitude: 106.8}

		mockSettings.EXPECT().SaveSettings(gomock.Any(), "guardian-1", settings).Return(nil)

		saved, err := uc.SaveSettings(ctx, "guardian-1", settings)
		require.NoError(t, err)
		assert.True(t, saved.Saved())
	})

	invalid := []struct {
		name   string
		modify func(s *models.Settings)
	}{
		{"non-numeric interval", func(s *models.Settings) { s.TrackingIntervalMinutes = "often" }},
		{"empty interval", func(s *models.Settings) { s.TrackingIntervalMinutes = "" }},
		{"interval below range", func(s *models.Settings) { s.TrackingIntervalMinutes = "0" }},
		{"interval above range", func(s *models.Settings) { s.TrackingIntervalMinutes = "1441" }},
		{"non-numeric radius", func(s *models.Settings) { s.GeofenceRadiusMeters = "wide" }},
		{"radius below range", func(s *models.Settings) { s.GeofenceRadiusMeters = "5" }},
		{"radius above range", func(s *models.Settings) { s.GeofenceRadiusMeters = "200000" }},
		{"long contact", func(s *models.Settings) {
			s.EmergencyContact1 = "+62812345678901234567890123456789012345678901234567890123456789012345"
		}},
		{"center out of range", func(s *models.Settings) {
			s.GeofenceCenter = &models.GeoPoint{Latitude: 91, Longitude: 0}
		}},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			settings := models.DefaultSettings()
			tt.modify(settings)

			_, err := uc.SaveSettings(ctx, "guardian-1", settings)
			assert.ErrorIs(t, err, models.ErrInvalidSettings)
		})
	}

	t.Run("nil settings", func(t *testing.T) {
		_, err := uc.SaveSettings(ctx, "guardian-1", nil)
		assert.ErrorIs(t, err, models.ErrInvalidSettings)
	})

	t.Run("store failure", func(t *testing.T) {
		mockSettings.EXPECT().SaveSettings(gomock.Any(), "guardian-1", gomock.Any()).Return(models.ErrStore)

		_, err := uc.SaveSettings(ctx, "guardian-1", models.DefaultSettings())
		assert.ErrorIs(t, err, models.ErrStore)
	})
}
