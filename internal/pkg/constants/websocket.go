package constants

// WebSocket events pushed to guardians watching a device
const (
	EventLocationSample = "location.sample"
	EventGeofenceAlert  = "geofence.alert"
)
