package account

import (
	"context"

	"github.com/piresc/kidtrack/internal/pkg/models"
)

// AccountUC defines the interface for login and settings business logic
type AccountUC interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)

	GetSettings(ctx context.Context, guardianID string) (*models.Settings, error)
	SaveSettings(ctx context.Context, guardianID string, settings *models.Settings) (*models.Settings, error)
}
