package constants

// Redis key formats
const (
	KeyLocationHistory  = "history:location:%s" // Format: history:location:{device_id}
	KeyGuardianSettings = "settings:guardian:%s" // Format: settings:guardian:{guardian_id}
)
