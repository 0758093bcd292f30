package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "10s" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds server settings. Values come from an optional YAML file with
// environment overrides applied on top.
type Config struct {
	Listen          string `yaml:"listen"`
	ForecastBaseURL string `yaml:"forecast_base_url"`
	GeocoderBaseURL string `yaml:"geocoder_base_url"`
	UserAgent       string `yaml:"user_agent"`

	RequestTimeout Duration `yaml:"request_timeout"`
	LocateTimeout  Duration `yaml:"locate_timeout"`

	// Default position used when a forecast is requested with neither
	// location text nor coordinates. Zero means unconfigured.
	DefaultLatitude  float64 `yaml:"default_latitude"`
	DefaultLongitude float64 `yaml:"default_longitude"`

	// AlignmentStrategy is "clock" or "timestamp".
	AlignmentStrategy string `yaml:"alignment_strategy"`

	DBPath string `yaml:"db_path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:            ":8080",
		ForecastBaseURL:   "https://api.open-meteo.com/v1/forecast",
		GeocoderBaseURL:   "https://nominatim.openstreetmap.org",
		UserAgent:         "hourlycast/1.0 (github.com/hourlycast/hourlycast)",
		RequestTimeout:    Duration(10 * time.Second),
		LocateTimeout:     Duration(5 * time.Second),
		AlignmentStrategy: "clock",
		DBPath:            "places.db",
	}
}

// Load reads path if it exists, then applies environment overrides. A missing
// file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Listen = ":" + v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GEOCODER_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("DEFAULT_LATITUDE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DefaultLatitude = f
		}
	}
	if v := os.Getenv("DEFAULT_LONGITUDE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DefaultLongitude = f
		}
	}
}
