package usecase

import (
	"github.com/go-playground/validator/v10"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/account"
)

type AccountUC struct {
	accountRepo  account.AccountRepo
	settingsRepo account.SettingsRepo
	validate     *validator.Validate
	cfg          *models.Config
}

// NewAccountUC creates a new account usecase instance
func NewAccountUC(
	accountRepo account.AccountRepo,
	settingsRepo account.SettingsRepo,
	cfg *models.Config,
) *AccountUC {
	return &AccountUC{
		accountRepo:  accountRepo,
		settingsRepo: settingsRepo,
		validate:     validator.New(),
		cfg:          cfg,
	}
}
