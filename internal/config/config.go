package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv  string
	Server   ServerConfig
	Database DatabaseConfig
	Claims   ClaimsConfig
	Sketch   SketchConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      string
	PublicURL string // base URL printed on reports and QR codes
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// ClaimsConfig holds the claims-system bridge configuration. An empty
// URL disables the bridge entirely.
type ClaimsConfig struct {
	URL          string
	Database     string
	Username     string
	Password     string
	SyncInterval int // minutes between export sweeps
}

// SketchConfig holds plan geometry tuning
type SketchConfig struct {
	Scale         float64 // pixels per foot
	MinRoomW      float64
	MinRoomH      float64
	WallTolerance float64
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		NodeEnv: getEnv("NODE_ENV", "development"),
		Server: ServerConfig{
			Port:      getEnv("PORT", "3410"),
			PublicURL: getEnv("PUBLIC_URL", "http://localhost:3410"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "claimsketch"),
		},
		Claims: ClaimsConfig{
			URL:          os.Getenv("CLAIMS_URL"),
			Database:     getEnv("CLAIMS_DB", "claims"),
			Username:     os.Getenv("CLAIMS_USERNAME"),
			Password:     os.Getenv("CLAIMS_PASSWORD"),
			SyncInterval: getEnvInt("CLAIMS_SYNC_INTERVAL", 15),
		},
		Sketch: SketchConfig{
			Scale:         getEnvFloat("SKETCH_SCALE", 4),
			MinRoomW:      getEnvFloat("SKETCH_MIN_ROOM_W", 40),
			MinRoomH:      getEnvFloat("SKETCH_MIN_ROOM_H", 30),
			WallTolerance: getEnvFloat("SKETCH_WALL_TOLERANCE", 8),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}
