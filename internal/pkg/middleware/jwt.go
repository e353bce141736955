package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/kidtrack/internal/pkg/jwt"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/internal/pkg/requestcontext"
	"github.com/piresc/kidtrack/internal/utils"
)

// ContextUserID is the echo context key carrying the authenticated guardian ID
const ContextUserID = "user_id"

// ContextUserEmail is the echo context key carrying the authenticated email
const ContextUserEmail = "user_email"

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			userID, err := jwtpkg.UserIDFromClaims(claims)
			if err != nil {
				return utils.UnauthorizedResponse(c, err.Error())
			}

			c.Set(ContextUserID, userID)
			req := c.Request()
			c.SetRequest(req.WithContext(requestcontext.WithUserID(req.Context(), userID.String())))
			if email, ok := (*claims)["email"].(string); ok {
				c.Set(ContextUserEmail, email)
			}

			return next(c)
		}
	}
}
