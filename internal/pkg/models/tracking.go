package models

import "time"

// SessionState is the tracking session state
type SessionState string

const (
	SessionIdle   SessionState = "idle"
	SessionActive SessionState = "active"
)

// SessionStatus is a point-in-time view of a device's tracking session
type SessionStatus struct {
	DeviceID   string          `json:"device_id"`
	SessionID  string          `json:"session_id,omitempty"`
	State      SessionState    `json:"state"`
	LastSample *LocationSample `json:"last_sample,omitempty"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	LastError  string          `json:"last_error,omitempty"`
}
