package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/middleware"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/account/handler/http"
)

// Handler coordinates the account service's HTTP handlers
type Handler struct {
	accountHandler *http.AccountHandler
	cfg            *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(accountHandler *http.AccountHandler, cfg *models.Config) *Handler {
	return &Handler{
		accountHandler: accountHandler,
		cfg:            cfg,
	}
}

// RegisterRoutes registers the public auth routes and the protected settings routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	auth := e.Group("/api/auth")
	auth.POST("/register", h.accountHandler.Register)
	auth.POST("/login", h.accountHandler.Login)

	settings := e.Group("/api/settings", middleware.JWTAuthMiddleware(h.cfg.JWT))
	settings.GET("", h.accountHandler.GetSettings)
	settings.PUT("", h.accountHandler.SaveSettings)
}
