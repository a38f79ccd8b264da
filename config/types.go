package config

// ServerConfig contains the HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// GTFSConfig points at the static GTFS dataset the schedule index is built from.
// Path may be a zip archive or an extracted directory holding the .txt tables.
type GTFSConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// FeedConfig contains the GTFS-Realtime upstream configuration.
// The subscription key is deliberately absent from the YAML shape: it is read
// from the METROLIVE_SUBSCRIPTION_KEY environment variable only.
type FeedConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	TripUpdatesURL      string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	PollIntervalSec     int    `yaml:"pollIntervalSec" validate:"gte=0"`
	FetchTimeoutSec     int    `yaml:"fetchTimeoutSec" validate:"gte=0"`
	SubscriptionKey     string `yaml:"-"`
}

// StreamConfig configures the websocket push cadence
type StreamConfig struct {
	PushIntervalSec int `yaml:"pushIntervalSec" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	GTFS   GTFSConfig   `yaml:"gtfs" validate:"required"`
	Feed   FeedConfig   `yaml:"feed"`
	Stream StreamConfig `yaml:"stream"`
}
