package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Engine configuration
	CanceledNavigationResolution string
	URLUpdateStrategy            string
	OnSameURLNavigation          string

	// Route configuration
	RoutesFile  string
	WatchRoutes bool

	// Logging
	LogLevel string

	// Feature flags
	EnableCORS bool

	// Requests per minute allowed per client, 0 disables limiting
	RateLimitRPM int

	// Shutdown
	ShutdownTimeout int // seconds
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		// Engine configuration
		CanceledNavigationResolution: getEnv("CANCELED_NAVIGATION_RESOLUTION", "replace"),
		URLUpdateStrategy:            getEnv("URL_UPDATE_STRATEGY", "deferred"),
		OnSameURLNavigation:          getEnv("ON_SAME_URL_NAVIGATION", "ignore"),

		// Route configuration
		RoutesFile:  getEnv("ROUTES_FILE", ""),
		WatchRoutes: getEnvBool("WATCH_ROUTES", false),

		// Logging and features
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		EnableCORS:      getEnvBool("ENABLE_CORS", true),
		RateLimitRPM:    getEnvInt("RATE_LIMIT_RPM", 0),
		ShutdownTimeout: getEnvInt("SHUTDOWN_TIMEOUT", 10),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all configuration values are usable
func (c *Config) Validate() error {
	switch c.CanceledNavigationResolution {
	case "replace", "computed":
	default:
		return fmt.Errorf("CANCELED_NAVIGATION_RESOLUTION must be 'replace' or 'computed', got %q", c.CanceledNavigationResolution)
	}
	switch c.URLUpdateStrategy {
	case "deferred", "eager":
	default:
		return fmt.Errorf("URL_UPDATE_STRATEGY must be 'deferred' or 'eager', got %q", c.URLUpdateStrategy)
	}
	switch c.OnSameURLNavigation {
	case "ignore", "reload":
	default:
		return fmt.Errorf("ON_SAME_URL_NAVIGATION must be 'ignore' or 'reload', got %q", c.OnSameURLNavigation)
	}
	if c.WatchRoutes && c.RoutesFile == "" {
		return fmt.Errorf("WATCH_ROUTES requires ROUTES_FILE to be set")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
