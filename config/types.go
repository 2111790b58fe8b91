package config

import "time"

// ServerConfig contains server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
	// SessionRetainMS keeps finished navigation sessions this long; 0 keeps
	// them until they are deleted.
	SessionRetainMS int `yaml:"sessionRetainMS" validate:"gte=0"`
}

func (c ServerConfig) SessionRetain() time.Duration {
	return time.Duration(c.SessionRetainMS) * time.Millisecond
}

// FallbackConfig is where the aircraft is drawn without a usable route.
type FallbackConfig struct {
	Lon float64 `yaml:"lon" validate:"gte=-180,lte=180"`
	Lat float64 `yaml:"lat" validate:"gte=-90,lte=90"`
}

// SimulatorConfig contains the route simulator constants
type SimulatorConfig struct {
	MaxFrame        int            `yaml:"maxFrame" validate:"gt=0"`
	LookaheadFrames int            `yaml:"lookaheadFrames" validate:"gte=0"`
	Fallback        FallbackConfig `yaml:"fallback"`
	FrameIntervalMS int            `yaml:"frameIntervalMS" validate:"gt=0"`
}

// FrameInterval is the wall-clock duration of one frame.
func (c SimulatorConfig) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// CameraConfig contains the follow-camera settings
type CameraConfig struct {
	Zoom          float64 `yaml:"zoom" validate:"gte=0,lte=24"`
	Pitch         float64 `yaml:"pitch" validate:"gte=0,lte=85"`
	ModelAltitude float64 `yaml:"modelAltitude"`
}

// FlightsConfig contains the flight-status source
type FlightsConfig struct {
	// StatusURL is an http(s) URL or a local file path.
	StatusURL      string `yaml:"statusURL"`
	PollIntervalMS int    `yaml:"pollIntervalMS" validate:"gt=0"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gt=0"`
}

func (c FlightsConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

func (c FlightsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// RoutesConfig points at route data. Empty paths use the built-in table and
// disable the taxiway network.
type RoutesConfig struct {
	TablePath          string `yaml:"tablePath"`
	TaxiwayNetworkPath string `yaml:"taxiwayNetworkPath"`
	CacheSize          int    `yaml:"cacheSize" validate:"gt=0"`
}

// LoggingConfig contains log level and destination
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	// File enables size-based rotation when set; otherwise logs go to stdout.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB" validate:"gte=0"`
	MaxBackups int    `yaml:"maxBackups" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Camera    CameraConfig    `yaml:"camera"`
	Flights   FlightsConfig   `yaml:"flights"`
	Routes    RoutesConfig    `yaml:"routes"`
	Logging   LoggingConfig   `yaml:"logging"`
}
