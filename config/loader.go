package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const DefaultPort = 16181

// DefaultPaths are tried by Load when no path is given.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Default returns the stock configuration.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{Port: DefaultPort, SessionRetainMS: 300000},
		Simulator: SimulatorConfig{
			MaxFrame:        30000,
			LookaheadFrames: 100,
			Fallback:        FallbackConfig{Lon: -66.10049911054594, Lat: 18.45718748211543},
			FrameIntervalMS: 16,
		},
		Camera: CameraConfig{Zoom: 19, Pitch: 70, ModelAltitude: -10},
		Flights: FlightsConfig{
			PollIntervalMS: 1000,
			TimeoutMS:      5000,
		},
		Routes:  RoutesConfig{CacheSize: 64},
		Logging: LoggingConfig{Level: "info", MaxSizeMB: 50, MaxBackups: 3},
	}
}

// Load reads the first of paths that exists (DefaultPaths when empty),
// fills missing values from Default and validates the result. The error
// wraps fs.ErrNotExist when none of the paths exist.
func Load(paths ...string) (*AppConfig, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates it.
func Parse(data []byte) (*AppConfig, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *AppConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// IsNotFound reports whether err came from Load finding no config file.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
