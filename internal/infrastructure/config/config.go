// internal/infrastructure/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// GlidingApp
	GlidingAppBaseURL  string
	GlidingAppAPIToken string

	// KTrax
	KTraxURL        string
	KTraxAirfieldID string
	KTraxTimezone   string

	// Aerolog
	AerologPath        string
	AerologSheet       string
	AerologHeaderRow   int
	AerologDriveFileID string

	// Google Drive
	DriveClientID     string
	DriveClientSecret string
	DriveRefreshToken string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL
	PostgresURI string

	// Reconciliation
	ReconcileInterval time.Duration
	SourceCacheTTL    time.Duration
	MatchTolerance    time.Duration
	HTTPClientTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		GlidingAppBaseURL:  getEnv("GLIDINGAPP_BASE_URL", "https://admin.zweef.app/club/cgc2"),
		GlidingAppAPIToken: getEnv("GLIDINGAPP_API_TOKEN", ""),

		KTraxURL:        getEnv("KTRAX_URL", "https://ktrax.kisstech.ch/backend/logbook"),
		KTraxAirfieldID: getEnv("KTRAX_AIRFIELD_ID", "GRANSDEN LODGE"),
		KTraxTimezone:   getEnv("KTRAX_TZ", "1"),

		AerologPath:        getEnv("AEROLOG_PATH", ""),
		AerologSheet:       getEnv("AEROLOG_SHEET", "Flight log enquiry"),
		AerologHeaderRow:   getEnvAsInt("AEROLOG_HEADER_ROW", 5),
		AerologDriveFileID: getEnv("AEROLOG_DRIVE_FILE_ID", ""),

		DriveClientID:     getEnv("DRIVE_CLIENT_ID", ""),
		DriveClientSecret: getEnv("DRIVE_CLIENT_SECRET", ""),
		DriveRefreshToken: getEnv("DRIVE_REFRESH_TOKEN", ""),

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "flightlog"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		ReconcileInterval: time.Duration(getEnvAsInt("RECONCILE_INTERVAL", 300)) * time.Second,
		SourceCacheTTL:    time.Duration(getEnvAsInt("SOURCE_CACHE_TTL", 120)) * time.Second,
		MatchTolerance:    time.Duration(getEnvAsInt("MATCH_TOLERANCE_SECONDS", 180)) * time.Second,
		HTTPClientTimeout: time.Duration(getEnvAsInt("HTTP_CLIENT_TIMEOUT", 30)) * time.Second,
	}

	return config, nil
}

// Validate reports settings the service cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.GlidingAppAPIToken == "" {
		errs = append(errs, errors.New("GLIDINGAPP_API_TOKEN is required"))
	}
	if c.AerologHeaderRow < 1 {
		errs = append(errs, errors.New("AEROLOG_HEADER_ROW must be 1 or greater"))
	}
	if c.ReconcileInterval <= 0 {
		errs = append(errs, errors.New("RECONCILE_INTERVAL must be a positive number of seconds"))
	}
	if c.AerologDriveFileID != "" && c.DriveRefreshToken == "" {
		errs = append(errs, errors.New("DRIVE_REFRESH_TOKEN is required when AEROLOG_DRIVE_FILE_ID is set"))
	}
	return errors.Join(errs...)
}

// AerologEnabled reports whether any Aerolog input is configured
func (c *Config) AerologEnabled() bool {
	return c.AerologPath != "" || c.AerologDriveFileID != ""
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
