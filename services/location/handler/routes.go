package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/middleware"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/location/handler/http"
	"github.com/piresc/kidtrack/services/location/handler/nsq"
	"github.com/piresc/kidtrack/services/location/handler/websocket"
)

// Handler coordinates all protocol handlers for the location service
type Handler struct {
	locationHandler *http.LocationHandler
	nsqHandler      *nsq.NsqHandler
	liveHandler     *websocket.LiveHandler
	cfg             *models.Config
}

// NewHandler creates and initializes all handlers. nsqHandler may be nil
// when messaging is disabled and liveHandler when live streaming is off.
func NewHandler(
	locationHandler *http.LocationHandler,
	nsqHandler *nsq.NsqHandler,
	liveHandler *websocket.LiveHandler,
	cfg *models.Config,
) *Handler {
	return &Handler{
		locationHandler: locationHandler,
		nsqHandler:      nsqHandler,
		liveHandler:     liveHandler,
		cfg:             cfg,
	}
}

// RegisterRoutes registers the JWT protected location routes under /api
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api", middleware.JWTAuthMiddleware(h.cfg.JWT))

	devices := api.Group("/devices/:deviceID")
	devices.GET("/location", h.locationHandler.GetCurrentLocation)
	devices.GET("/history", h.locationHandler.GetHistory)
	devices.POST("/history", h.locationHandler.SaveToHistory)
	devices.POST("/positions", h.locationHandler.ReportPosition)
	devices.PUT("/permission", h.locationHandler.UpdatePermission)
	if h.liveHandler != nil {
		devices.GET("/live", h.liveHandler.StreamLocation)
	}

	tracking := api.Group("/tracking/:deviceID")
	tracking.GET("", h.locationHandler.GetTrackingStatus)
	tracking.POST("/start", h.locationHandler.StartTracking)
	tracking.POST("/stop", h.locationHandler.StopTracking)
}

// InitNSQConsumers starts the device report consumer when messaging is enabled
func (h *Handler) InitNSQConsumers() error {
	if h.nsqHandler == nil {
		return nil
	}
	return h.nsqHandler.InitNSQConsumers()
}

// StopNSQConsumers stops the device report consumer
func (h *Handler) StopNSQConsumers() {
	if h.nsqHandler != nil {
		h.nsqHandler.Stop()
	}
}
