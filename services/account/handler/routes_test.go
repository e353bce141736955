package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/models"
	httphandler "github.com/piresc/kidtrack/services/account/handler/http"
	"github.com/piresc/kidtrack/services/account/mocks"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &models.Config{JWT: models.JWTConfig{Secret: "test-secret", Expiration: 60}}
	mockUC := mocks.NewMockAccountUC(ctrl)
	e := echo.New()
	NewHandler(httphandler.NewAccountHandler(mockUC), cfg).RegisterRoutes(e)

	mockUC.EXPECT().Login(gomock.Any(), gomock.Any()).Return(&models.AuthResponse{Token: "t"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"guardian@example.com","password":"s3cret-pass"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
