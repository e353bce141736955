package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a guardian login
type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullname" db:"fullname"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// LoginRequest is the login form payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,contains=@"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a guardian account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullname" validate:"max=128"`
}

// AuthResponse is returned after a successful login
type AuthResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	Account   *Account `json:"account"`
}
