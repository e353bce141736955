package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/middleware"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/account/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAccountUC(ctrl)
	handler := NewAccountHandler(mockUC)

	t.Run("success", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"guardian@example.com","password":"s3cret-pass"}`)
		mockUC.EXPECT().Login(gomock.Any(), &models.LoginRequest{Email: "guardian@example.com", Password: "s3cret-pass"}).
			Return(&models.AuthResponse{Token: "token-1", ExpiresAt: 123}, nil)

		require.NoError(t, handler.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		data := decode(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "token-1", data["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"guardian@example.com","password":"nope"}`)
		mockUC.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, models.ErrInvalidCredentials)

		require.NoError(t, handler.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"guardian","password":"s3cret-pass"}`)
		mockUC.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, models.ErrInvalidRequest)

		require.NoError(t, handler.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":`)

		require.NoError(t, handler.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAccountUC(ctrl)
	handler := NewAccountHandler(mockUC)
	accountID := uuid.New()

	c, rec := newContext(http.MethodPost, "/api/auth/register",
		`{"email":"guardian@example.com","password":"s3cret-pass","fullname":"Jane Guardian"}`)
	mockUC.EXPECT().Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req *models.RegisterRequest) (*models.Account, error) {
			assert.Equal(t, "Jane Guardian", req.FullName)
			return &models.Account{ID: accountID, Email: req.Email, PasswordHash: "hash", FullName: req.FullName}, nil
		})

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")

	c, rec = newContext(http.MethodPost, "/api/auth/register", `{"email":"guardian@example.com","password":"s3cret-pass"}`)
	mockUC.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, models.ErrAccountExists)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAccountUC(ctrl)
	handler := NewAccountHandler(mockUC)
	guardian := uuid.New()

	t.Run("requires a guardian", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/api/settings", "")

		require.NoError(t, handler.GetSettings(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/api/settings", "")
		c.Set(middleware.ContextUserID, guardian)
		mockUC.EXPECT().GetSettings(gomock.Any(), guardian.String()).Return(models.DefaultSettings(), nil)

		require.NoError(t, handler.GetSettings(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		data := decode(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "5", data["tracking_interval_minutes"])
	})

	t.Run("save", func(t *testing.T) {
		body := `{"notifications_enabled":true,"geofencing_enabled":true,"tracking_interval_minutes":"10",` +
			`"geofence_radius_meters":"250","geofence_center":{"latitude":-6.2,"longitude":106.8}}`
		c, rec := newContext(http.MethodPut, "/api/settings", body)
		c.Set(middleware.ContextUserID, guardian)

		mockUC.EXPECT().SaveSettings(gomock.Any(), guardian.String(), gomock.Any()).
			DoAndReturn(func(_ interface{}, _ string, s *models.Settings) (*models.Settings, error) {
				assert.Equal(t, "10", s.TrackingIntervalMinutes)
				require.NotNil(t, s.GeofenceCenter)
				assert.Equal(t, 106.8, s.GeofenceCenter.Longitude)
				return s, nil
			})

		require.NoError(t, handler.SaveSettings(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("save invalid", func(t *testing.T) {
		c, rec := newContext(http.MethodPut, "/api/settings", `{"tracking_interval_minutes":"often"}`)
		c.Set(middleware.ContextUserID, guardian)
		mockUC.EXPECT().SaveSettings(gomock.Any(), guardian.String(), gomock.Any()).
			Return(nil, models.ErrInvalidSettings)

		require.NoError(t, handler.SaveSettings(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
