package models

import (
	"fmt"
	"time"
)

// LocationSample is a single latitude/longitude observation. Timestamps are unix milliseconds.
type LocationSample struct {
	Latitude    float64 `json:"latitude" db:"latitude"`
	Longitude   float64 `json:"longitude" db:"longitude"`
	TimestampMs int64   `json:"timestamp" db:"recorded_at_ms"`
	Geohash     string  `json:"geohash,omitempty" db:"geohash"`
}

// Time returns the sample timestamp as a UTC time
func (s LocationSample) Time() time.Time {
	return time.UnixMilli(s.TimestampMs).UTC()
}

// Validate checks coordinate ranges and the timestamp
func (s LocationSample) Validate() error {
	if s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidLocation)
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidLocation)
	}
	if s.TimestampMs <= 0 {
		return fmt.Errorf("%w: timestamp must be positive", ErrInvalidLocation)
	}
	return nil
}

// GeoPoint is a bare coordinate pair
type GeoPoint struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// HistoryQuery narrows a history listing. Zero values mean unbounded.
// Limit keeps the most recent samples, the result is still ascending.
type HistoryQuery struct {
	FromMs int64 `json:"from,omitempty"`
	ToMs   int64 `json:"to,omitempty"`
	Limit  int   `json:"limit,omitempty"`
}

// DeviceReport is what a child device sends over NSQ or HTTP
type DeviceReport struct {
	DeviceID          string          `json:"device_id"`
	Sample            *LocationSample `json:"sample,omitempty"`
	PermissionGranted *bool           `json:"permission_granted,omitempty"`
	Error             string          `json:"error,omitempty"`
}

// SampleEvent is published for every recorded sample
type SampleEvent struct {
	DeviceID    string         `json:"device_id"`
	SessionID   string         `json:"session_id,omitempty"`
	Sample      LocationSample `json:"sample"`
	PublishedAt time.Time      `json:"published_at"`
}

// GeofenceEventType names a boundary crossing
type GeofenceEventType string

const (
	GeofenceEntry GeofenceEventType = "geofence_entry"
	GeofenceExit  GeofenceEventType = "geofence_exit"
)

// GeofenceAlert is published when a tracked device crosses its guardian's geofence
type GeofenceAlert struct {
	DeviceID       string            `json:"device_id"`
	GuardianID     string            `json:"guardian_id"`
	Event          GeofenceEventType `json:"event"`
	Sample         LocationSample    `json:"sample"`
	RadiusMeters   float64           `json:"radius_meters"`
	DistanceMeters float64           `json:"distance_meters"`
	EmergencyAlert bool              `json:"emergency_alert"`
}
