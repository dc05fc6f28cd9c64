package config

import (
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	return configValue.Load().(*Config)
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Geocoding   GeocodingConfig `mapstructure:"geocoding"`
	Weather     WeatherConfig   `mapstructure:"weather"`
	Locations   []LocationSpec  `mapstructure:"locations" validate:"dive"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

// LocationSpec is one (city, country) pair the pipeline resolves and reports on.
type LocationSpec struct {
	City    string `mapstructure:"city" validate:"required"`
	Country string `mapstructure:"country"`
}

type GeocodingConfig struct {
	// Provider selects the geocoding backend: "nominatim" or "open-meteo".
	Provider string `mapstructure:"provider" validate:"oneof=nominatim open-meteo"`
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
	// Count limits how many ranked candidates the provider returns.
	Count    int    `mapstructure:"count" validate:"min=1"`
	APIKey   string `mapstructure:"api_key"`
	CacheTTL int    `mapstructure:"cache_ttl"`
}

type WeatherConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	ForecastDays int    `mapstructure:"forecast_days" validate:"min=1,max=16"`
	PanelTilt    int    `mapstructure:"panel_tilt"`
	PanelAzimuth int    `mapstructure:"panel_azimuth"`
	Timeout      int    `mapstructure:"timeout"`
	Retries      int    `mapstructure:"retries"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Geocoding: GeocodingConfig{
			Provider: "nominatim",
			BaseURL:  "https://nominatim.openstreetmap.org",
			Language: "en",
			Count:    10,
			CacheTTL: 86400,
		},
		Weather: WeatherConfig{
			BaseURL:      "https://api.open-meteo.com/v1",
			ForecastDays: 7,
			PanelTilt:    0,
			PanelAzimuth: 0,
			Timeout:      10,
			Retries:      3,
		},
		Locations: []LocationSpec{
			{City: "New York", Country: "USA"},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}
