package usecase

import (
	"sync"

	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/services/location"
	"github.com/piresc/kidtrack/services/location/source"
	"github.com/piresc/kidtrack/services/location/tracking"
)

// trackedDevice is a device's latest session and the guardian who started it
type trackedDevice struct {
	session    *tracking.Session
	guardianID string
}

type LocationUC struct {
	registry *source.Registry
	history  location.HistoryRepo
	gateway  location.LocationGW
	settings location.SettingsReader
	cfg      *models.Config
	geofence *GeofenceMonitor

	mu       sync.Mutex
	sessions map[string]*trackedDevice
}

// NewLocationUC creates a new location usecase instance. gateway and
// settings may be nil, in which case events are not published and the
// configured tracking interval is always used.
func NewLocationUC(
	registry *source.Registry,
	history location.HistoryRepo,
	gateway location.LocationGW,
	settings location.SettingsReader,
	cfg *models.Config,
) *LocationUC {
	return &LocationUC{
		registry: registry,
		history:  history,
		gateway:  gateway,
		settings: settings,
		cfg:      cfg,
		geofence: NewGeofenceMonitor(),
		sessions: make(map[string]*trackedDevice),
	}
}
