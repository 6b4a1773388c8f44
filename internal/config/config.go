package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultWeatherURL   = "https://api.openweathermap.org/data/2.5/weather"
	DefaultGeocodingURL = "https://api.openweathermap.org/geo/1.0/direct"
)

// Config holds application configuration
type Config struct {
	Provider ProviderConfig
	Server   ServerConfig
	Widget   WidgetConfig
}

// ProviderConfig holds settings for the remote weather and geocoding endpoints
type ProviderConfig struct {
	APIKey            string
	WeatherURL        string
	GeocodingURL      string
	Units             string
	AutocompleteLimit int
	MinChars          int
	// Timeout of zero leaves request lifetime to the transport.
	Timeout time.Duration
}

// HasAPIKey reports whether an API key is configured
func (c ProviderConfig) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	// SessionIdleTimeout closes widget sessions without activity; zero keeps them.
	SessionIdleTimeout time.Duration
}

// WidgetConfig holds settings for the view controller
type WidgetConfig struct {
	DefaultLocation string
	DebounceDelay   time.Duration
	ThemeFile       string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Provider: ProviderConfig{
			APIKey:            strings.TrimSpace(os.Getenv("WEATHER_API_KEY")),
			WeatherURL:        getEnv("WEATHER_BASE_URL", DefaultWeatherURL),
			GeocodingURL:      getEnv("GEOCODING_BASE_URL", DefaultGeocodingURL),
			Units:             getEnv("WEATHER_UNITS", "Metric"),
			AutocompleteLimit: getEnvAsInt("AUTOCOMPLETE_LIMIT", 5),
			MinChars:          getEnvAsInt("AUTOCOMPLETE_MIN_CHARS", 2),
			Timeout:           getEnvAsDuration("HTTP_TIMEOUT", 0),
		},
		Server: ServerConfig{
			Port:               getEnv("APP_PORT", "8080"),
			SessionIdleTimeout: getEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		},
		Widget: WidgetConfig{
			DefaultLocation: getEnv("WIDGET_DEFAULT_LOCATION", "Tbilisi"),
			DebounceDelay:   getEnvAsDuration("WIDGET_DEBOUNCE", 500*time.Millisecond),
			ThemeFile:       os.Getenv("WIDGET_THEME_FILE"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("750ms") or bare milliseconds ("750")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d >= 0 {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
