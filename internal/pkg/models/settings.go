package models

import (
	"strconv"
	"time"
)

// Settings holds a guardian's monitoring preferences
type Settings struct {
	NotificationsEnabled    bool      `json:"notifications_enabled"`
	GeofencingEnabled       bool      `json:"geofencing_enabled"`
	EmergencyAlertsEnabled  bool      `json:"emergency_alerts_enabled"`
	TrackingIntervalMinutes string    `json:"tracking_interval_minutes" validate:"required,numeric"`
	GeofenceRadiusMeters    string    `json:"geofence_radius_meters" validate:"required,numeric"`
	GeofenceCenter          *GeoPoint `json:"geofence_center,omitempty" validate:"omitempty"`
	EmergencyContact1       string    `json:"emergency_contact_1" validate:"max=64"`
	EmergencyContact2       string    `json:"emergency_contact_2" validate:"max=64"`
	UpdatedAt               time.Time `json:"updated_at,omitempty"`
}

// DefaultSettings mirrors the values the app ships with
func DefaultSettings() *Settings {
	return &Settings{
		NotificationsEnabled:    true,
		GeofencingEnabled:       true,
		EmergencyAlertsEnabled:  true,
		TrackingIntervalMinutes: "5",
		GeofenceRadiusMeters:    "100",
	}
}

// TrackingInterval parses TrackingIntervalMinutes
func (s *Settings) TrackingInterval() (time.Duration, error) {
	minutes, err := strconv.ParseFloat(s.TrackingIntervalMinutes, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes * float64(time.Minute)), nil
}

// GeofenceRadius parses GeofenceRadiusMeters
func (s *Settings) GeofenceRadius() (float64, error) {
	return strconv.ParseFloat(s.GeofenceRadiusMeters, 64)
}

// Saved reports whether the guardian has ever stored these settings
func (s *Settings) Saved() bool {
	return !s.UpdatedAt.IsZero()
}
