package account

import (
	"context"

	"github.com/piresc/kidtrack/internal/pkg/models"
)

// AccountRepo stores guardian accounts
type AccountRepo interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

// SettingsRepo stores guardian settings. GetSettings returns the app
// defaults for a guardian that never saved any.
type SettingsRepo interface {
	GetSettings(ctx context.Context, guardianID string) (*models.Settings, error)
	SaveSettings(ctx context.Context, guardianID string, settings *models.Settings) error
}
