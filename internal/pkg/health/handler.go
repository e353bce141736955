package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// ServiceInfo is served on /ping
type ServiceInfo struct {
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	StartedAt   time.Time `json:"started_at"`
	Uptime      string    `json:"uptime"`
	ServerTime  time.Time `json:"server_time"`
}

// NewPingHandler creates a handler for the ping endpoint. Hostname, Go
// version and start time are filled in when empty.
func NewPingHandler(info ServiceInfo) echo.HandlerFunc {
	if info.Hostname == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		info.Hostname = hostname
	}
	if info.Version == "" {
		info.Version = "development"
	}
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}
	if info.StartedAt.IsZero() {
		info.StartedAt = time.Now()
	}

	return func(c echo.Context) error {
		resp := info
		resp.ServerTime = time.Now()
		resp.Uptime = resp.ServerTime.Sub(info.StartedAt).Truncate(time.Second).String()
		return c.JSON(http.StatusOK, resp)
	}
}

// RegisterHealthEndpoints registers liveness and readiness endpoints. A nil
// service makes /ready always succeed.
func RegisterHealthEndpoints(e *echo.Echo, info ServiceInfo, svc *HealthService) {
	e.GET("/ping", NewPingHandler(info))

	live := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}
	e.GET("/health", live)
	e.GET("/healthz", live)

	e.GET("/ready", func(c echo.Context) error {
		if svc == nil {
			return c.String(http.StatusOK, "OK")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
		defer cancel()

		response := svc.CheckAllHealth(ctx)
		response.Service = info.Service

		if response.Status != StatusHealthy {
			return c.JSON(http.StatusServiceUnavailable, response)
		}
		return c.JSON(http.StatusOK, response)
	})
}
