package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

// ErrInvalidToken is returned for tokens that fail parsing or validation
var ErrInvalidToken = errors.New("invalid token")

// GenerateToken generates a signed JWT for a guardian account
func GenerateToken(userID uuid.UUID, email string, cfg *models.Config) (string, int64, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.JWT.Expiration) * time.Minute)
	expiresAt := expirationTime.Unix()

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"exp":     expiresAt,
		"iss":     cfg.JWT.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, secret string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}

// UserIDFromClaims extracts the user_id claim as a UUID
func UserIDFromClaims(claims *jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := (*claims)["user_id"]
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}

	userID, err := uuid.Parse(fmt.Sprintf("%v", raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: user_id is not a valid UUID", ErrInvalidToken)
	}
	return userID, nil
}
