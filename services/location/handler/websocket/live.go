package websocket

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/middleware"
	wspkg "github.com/piresc/kidtrack/internal/pkg/websocket"
	"github.com/piresc/kidtrack/internal/utils"
)

// LiveHandler streams a device's samples and geofence alerts to guardians
type LiveHandler struct {
	manager *wspkg.Manager
}

// NewLiveHandler creates a new live stream handler
func NewLiveHandler(manager *wspkg.Manager) *LiveHandler {
	return &LiveHandler{manager: manager}
}

// StreamLocation upgrades to a WebSocket subscribed to the device in the path
func (h *LiveHandler) StreamLocation(c echo.Context) error {
	deviceID := c.Param("deviceID")
	if deviceID == "" {
		return utils.ErrorResponseHandler(c, http.StatusBadRequest, "device ID is required")
	}

	userID := c.Get(middleware.ContextUserID)
	if userID == nil {
		return utils.UnauthorizedResponse(c, "")
	}

	return h.manager.HandleConnection(c, deviceID, fmt.Sprintf("%v", userID))
}
