package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/middleware"
	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/internal/utils"
	"github.com/piresc/kidtrack/services/location"
)

// LocationHandler handles HTTP requests for positions, history and tracking
type LocationHandler struct {
	locationUC location.LocationUC
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationUC location.LocationUC) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
	}
}

// PermissionRequest is the body of a permission update
type PermissionRequest struct {
	Granted *bool `json:"granted"`
}

// GetCurrentLocation returns the device's latest position
func (h *LocationHandler) GetCurrentLocation(c echo.Context) error {
	deviceID := c.Param("deviceID")
	if deviceID == "" {
		return utils.BadRequestResponse(c, "Device ID is required")
	}

	sample, err := h.locationUC.GetCurrentLocation(c.Request().Context(), deviceID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location retrieved successfully", sample)
}

// StartTracking starts a tracking session for the device
func (h *LocationHandler) StartTracking(c echo.Context) error {
	deviceID := c.Param("deviceID")
	if deviceID == "" {
		return utils.BadRequestResponse(c, "Device ID is required")
	}

	status, err := h.locationUC.StartTracking(c.Request().Context(), deviceID, guardianID(c))
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking started", status)
}

// StopTracking stops the device's tracking session
func (h *LocationHandler) StopTracking(c echo.Context) error {
	deviceID := c.Param("deviceID")
	if deviceID == "" {
		return utils.BadRequestResponse(c, "Device ID is required")
	}

	status, err := h.locationUC.StopTracking(c.Request().Context(), deviceID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking stopped", status)
}

// GetTrackingStatus returns the device's session snapshot
func (h *LocationHandler) GetTrackingStatus(c echo.Context) error {
	deviceID := c.Param("deviceID")
	if deviceID == "" {
		return utils.BadRequestResponse(c, "Device ID is required")
	}

	status, err := h.locationUC.SessionStatus(c.Request().Context(), deviceID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking status retrieved successfully", status)
}

// GetHistory lists recorded samples. Query parameters: from, to (unix ms) and limit.
func (h *LocationHandler) GetHistory(c echo.Context) error {
	deviceID := c.Param("deviceID")
	if deviceID == "" {
		return utils.BadRequestResponse(c, "Device ID is required")
	}

	query, err := parseHistoryQuery(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	samples, err := h.locationUC.GetHistory(c.Request().Context(), deviceID, query)
	if err != nil {
		logger.Warn("Failed to read location history",
			logger.String("device_id", deviceID),
			logger.Err(err))
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "History retrieved successfully", samples)
}

// SaveToHistory records a sample sent by the client
func (h *LocationHandler) SaveToHistory(c echo.Context) error {
	deviceID := c.Param("deviceID")
	if deviceID == "" {
		return utils.BadRequestResponse(c, "Device ID is required")
	}

	var sample models.LocationSample
	if err := c.Bind(&sample); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if err := h.locationUC.SaveToHistory(c.Request().Context(), deviceID, sample); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Sample saved", nil)
}

// ReportPosition accepts a device report: a position, a permission change, a failure or a mix
func (h *LocationHandler) ReportPosition(c echo.Context) error {
	deviceID := c.Param("deviceID")
	if deviceID == "" {
		return utils.BadRequestResponse(c, "Device ID is required")
	}

	var report models.DeviceReport
	if err := c.Bind(&report); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	report.DeviceID = deviceID

	if err := h.locationUC.HandleReport(c.Request().Context(), report); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusAccepted, "Report accepted", nil)
}

// UpdatePermission records the device's location permission
func (h *LocationHandler) UpdatePermission(c echo.Context) error {
	deviceID := c.Param("deviceID")
	if deviceID == "" {
		return utils.BadRequestResponse(c, "Device ID is required")
	}

	var req PermissionRequest
	if err := c.Bind(&req); err != nil || req.Granted == nil {
		return utils.BadRequestResponse(c, "granted is required")
	}

	if err := h.locationUC.UpdatePermission(c.Request().Context(), deviceID, *req.Granted); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Permission updated", req)
}

func parseHistoryQuery(c echo.Context) (models.HistoryQuery, error) {
	var query models.HistoryQuery

	if raw := c.QueryParam("from"); raw != "" {
		from, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return query, fmt.Errorf("invalid from: %s", raw)
		}
		query.FromMs = from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return query, fmt.Errorf("invalid to: %s", raw)
		}
		query.ToMs = to
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return query, fmt.Errorf("invalid limit: %s", raw)
		}
		query.Limit = limit
	}
	return query, nil
}

func guardianID(c echo.Context) string {
	if userID := c.Get(middleware.ContextUserID); userID != nil {
		return fmt.Sprintf("%v", userID)
	}
	return ""
}
