package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/kidtrack/internal/pkg/jwt"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a guardian account with a bcrypt password hash
func (uc *AccountUC) Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := uc.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.accountRepo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Guardian account registered",
		logger.String("account_id", account.ID.String()))
	return account, nil
}

// Login checks the credentials and issues a JWT
func (uc *AccountUC) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	account, err := uc.accountRepo.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Failed login attempt", logger.String("account_id", account.ID.String()))
		return nil, models.ErrInvalidCredentials
	}

	token, expiresAt, err := jwt.GenerateToken(account.ID, account.Email, uc.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	}, nil
}
