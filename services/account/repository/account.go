package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

const uniqueViolation = "23505"

// AccountRepo stores guardian accounts in PostgreSQL
type AccountRepo struct {
	db *sqlx.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *sqlx.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// CreateAccount inserts account. A duplicate email returns ErrAccountExists.
func (r *AccountRepo) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, fullname, created_at)
		VALUES (:id, :email, :password_hash, :fullname, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", models.ErrAccountExists, account.Email)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByEmail looks an account up by its lower-cased email
func (r *AccountRepo) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, fullname, created_at
		FROM accounts
		WHERE email = $1
	`

	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, strings.ToLower(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}
