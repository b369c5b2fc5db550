package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default upstream endpoints
const (
	DefaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	DefaultWeatherURL = "https://api.darksky.net/forecast"
	DefaultEventsURL  = "https://www.eventbriteapi.com/v3/events/search"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Database  DatabaseConfig
	Providers ProvidersConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DatabaseConfig holds the location cache database settings
type DatabaseConfig struct {
	Driver string // postgres, sqlite
	URL    string
}

// ProvidersConfig holds settings for the upstream APIs
type ProvidersConfig struct {
	Timeout time.Duration
	Geocode ProviderConfig
	Weather ProviderConfig
	Events  ProviderConfig
}

// ProviderConfig is the key and endpoint of a single upstream API
type ProviderConfig struct {
	APIKey  string
	BaseURL string
}

// envBindings maps config keys to the environment variables the service
// has always been deployed with.
var envBindings = map[string][]string{
	"server.port":               {"PORT"},
	"server.ginmode":            {"GIN_MODE"},
	"log.level":                 {"LOG_LEVEL"},
	"log.format":                {"LOG_FORMAT"},
	"database.driver":           {"DATABASE_DRIVER"},
	"database.url":              {"PG_CONNECTION_URL", "DATABASE_URL"},
	"providers.timeout":         {"PROVIDER_TIMEOUT"},
	"providers.geocode.apikey":  {"GEOCODE_API_KEY"},
	"providers.geocode.baseurl": {"GEOCODE_BASE_URL"},
	"providers.weather.apikey":  {"DARKSKY_API_KEY"},
	"providers.weather.baseurl": {"DARKSKY_BASE_URL"},
	"providers.events.apikey":   {"EVENTBRITE_API_KEY"},
	"providers.events.baseurl":  {"EVENTBRITE_BASE_URL"},
}

// Load reads configuration from file, environment variables and flags.
// flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.city-explorer")
	}

	// Set defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("providers.timeout", 10*time.Second)
	v.SetDefault("providers.geocode.baseurl", DefaultGeocodeURL)
	v.SetDefault("providers.weather.baseurl", DefaultWeatherURL)
	v.SetDefault("providers.events.baseurl", DefaultEventsURL)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if flags != nil {
		if f := flags.Lookup("port"); f != nil {
			if err := v.BindPFlag("server.port", f); err != nil {
				return nil, fmt.Errorf("failed to bind port flag: %w", err)
			}
		}
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings the service cannot start without
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database url is required (set PG_CONNECTION_URL)")
	}
	switch strings.ToLower(c.Database.Driver) {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Providers.Timeout <= 0 {
		return errors.New("provider timeout must be positive")
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: c.LogLevel(),
	}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// LogLevel parses the configured level, falling back to info
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
