package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/kidtrack/internal/pkg/constants"
	"github.com/piresc/kidtrack/internal/pkg/database"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

// SettingsRepo keeps each guardian's settings as a JSON document in Redis
type SettingsRepo struct {
	redisClient *database.RedisClient
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(redisClient *database.RedisClient) *SettingsRepo {
	return &SettingsRepo{redisClient: redisClient}
}

func settingsKey(guardianID string) string {
	return fmt.Sprintf(constants.KeyGuardianSettings, guardianID)
}

// GetSettings returns the saved settings or the defaults
func (r *SettingsRepo) GetSettings(ctx context.Context, guardianID string) (*models.Settings, error) {
	raw, err := r.redisClient.Get(ctx, settingsKey(guardianID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("%w: failed to load settings: %v", models.ErrStore, err)
	}

	var settings models.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("%w: corrupt settings for guardian %s: %v", models.ErrStore, guardianID, err)
	}
	return &settings, nil
}

// SaveSettings overwrites the guardian's settings
func (r *SettingsRepo) SaveSettings(ctx context.Context, guardianID string, settings *models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := r.redisClient.Set(ctx, settingsKey(guardianID), data, 0); err != nil {
		return fmt.Errorf("%w: failed to save settings: %v", models.ErrStore, err)
	}
	return nil
}
