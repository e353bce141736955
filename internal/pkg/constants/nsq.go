package constants

// NSQ topics
const (
	// Device gateway
	TopicLocationReport = "location.report"

	// Tracking
	TopicLocationSample = "location.sample"
	TopicGeofenceAlert  = "geofence.alert"
)
