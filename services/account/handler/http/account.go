package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/middleware"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/internal/utils"
	"github.com/piresc/kidtrack/services/account"
)

// AccountHandler handles HTTP requests for login and guardian settings
type AccountHandler struct {
	accountUC account.AccountUC
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountUC account.AccountUC) *AccountHandler {
	return &AccountHandler{
		accountUC: accountUC,
	}
}

// Register handles guardian sign-up
func (h *AccountHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	account, err := h.accountUC.Register(c.Request().Context(), &req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Account created successfully", account)
}

// Login handles email and password login
func (h *AccountHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Invalid request payload for login",
			logger.Err(err),
			logger.String("endpoint", "Login"))
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.accountUC.Login(c.Request().Context(), &req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// GetSettings returns the authenticated guardian's settings
func (h *AccountHandler) GetSettings(c echo.Context) error {
	guardianID, ok := guardianIDFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	settings, err := h.accountUC.GetSettings(c.Request().Context(), guardianID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Settings retrieved successfully", settings)
}

// SaveSettings replaces the authenticated guardian's settings
func (h *AccountHandler) SaveSettings(c echo.Context) error {
	guardianID, ok := guardianIDFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var settings models.Settings
	if err := c.Bind(&settings); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	saved, err := h.accountUC.SaveSettings(c.Request().Context(), guardianID, &settings)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Settings saved successfully", saved)
}

func guardianIDFrom(c echo.Context) (string, bool) {
	userID := c.Get(middleware.ContextUserID)
	if userID == nil {
		return "", false
	}
	return fmt.Sprintf("%v", userID), true
}
