package usecase

import (
	"sync"

	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/piresc/kidtrack/internal/utils"
)

// Fence is a circular boundary around a guardian's home point
type Fence struct {
	Center       models.GeoPoint
	RadiusMeters float64
	Emergency    bool
}

// FenceFromSettings builds the guardian's fence. ok is false when geofencing
// is off, no center is set or the radius does not parse.
func FenceFromSettings(s *models.Settings) (fence Fence, ok bool) {
	if s == nil || !s.GeofencingEnabled || s.GeofenceCenter == nil {
		return Fence{}, false
	}
	radius, err := s.GeofenceRadius()
	if err != nil || radius <= 0 {
		return Fence{}, false
	}
	return Fence{
		Center:       *s.GeofenceCenter,
		RadiusMeters: radius,
		Emergency:    s.EmergencyAlertsEnabled,
	}, true
}

// GeofenceMonitor remembers whether each device was last seen inside its fence
type GeofenceMonitor struct {
	mu     sync.Mutex
	inside map[string]bool
}

// NewGeofenceMonitor creates an empty monitor
func NewGeofenceMonitor() *GeofenceMonitor {
	return &GeofenceMonitor{inside: make(map[string]bool)}
}

// Evaluate returns an alert when sample puts the device on the other side of
// fence. The first sample of a device only records which side it is on.
func (m *GeofenceMonitor) Evaluate(deviceID, guardianID string, fence Fence, sample models.LocationSample) *models.GeofenceAlert {
	distance := utils.DistanceMeters(fence.Center, utils.PointOf(sample))
	inside := distance <= fence.RadiusMeters

	m.mu.Lock()
	wasInside, known := m.inside[deviceID]
	m.inside[deviceID] = inside
	m.mu.Unlock()

	if !known || wasInside == inside {
		return nil
	}

	event := models.GeofenceEntry
	if !inside {
		event = models.GeofenceExit
	}
	return &models.GeofenceAlert{
		DeviceID:       deviceID,
		GuardianID:     guardianID,
		Event:          event,
		Sample:         sample,
		RadiusMeters:   fence.RadiusMeters,
		DistanceMeters: distance,
		EmergencyAlert: fence.Emergency && event == models.GeofenceExit,
	}
}

// Reset forgets the device's last side
func (m *GeofenceMonitor) Reset(deviceID string) {
	m.mu.Lock()
	delete(m.inside, deviceID)
	m.mu.Unlock()
}
