package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/kidtrack/internal/pkg/database"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettingsRepo(t *testing.T) (*miniredis.Miniredis, *SettingsRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewSettingsRepo(client)
}

func TestSettingsRepo_DefaultsWhenUnsaved(t *testing.T) {
	_, repo := newTestSettingsRepo(t)

	settings, err := repo.GetSettings(context.Background(), "guardian-1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
	assert.False(t, settings.Saved())
}

func TestSettingsRepo_SaveAndGet(t *testing.T) {
	mr, repo := newTestSettingsRepo(t)
	ctx := context.Background()

	saved := models.DefaultSettings()
	saved.TrackingIntervalMinutes = "10"
	saved.GeofenceCenter = &models.GeoPoint{Latitude: -6.2, Longitude: 106.8}
	saved.EmergencyContact1 = "+628123456789"
	saved.UpdatedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveSettings(ctx, "guardian-1", saved))
	assert.True(t, mr.Exists(settingsKey("guardian-1")))

	got, err := repo.GetSettings(ctx, "guardian-1")
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	assert.True(t, got.Saved())

	other, err := repo.GetSettings(ctx, "guardian-2")
	require.NoError(t, err)
	assert.Equal(t, "5", other.TrackingIntervalMinutes)
}

func TestSettingsRepo_CorruptDocument(t *testing.T) {
	mr, repo := newTestSettingsRepo(t)
	require.NoError(t, mr.Set(settingsKey("guardian-1"), "{broken"))

	_, err := repo.GetSettings(context.Background(), "guardian-1")
	assert.ErrorIs(t, err, models.ErrStore)
}

func TestSettingsRepo_RedisDown(t *testing.T) {
	mr, repo := newTestSettingsRepo(t)
	mr.Close()

	_, err := repo.GetSettings(context.Background(), "guardian-1")
	assert.ErrorIs(t, err, models.ErrStore)

	err = repo.SaveSettings(context.Background(), "guardian-1", models.DefaultSettings())
	assert.ErrorIs(t, err, models.ErrStore)
}
