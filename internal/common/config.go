package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	OCR      OCRConfig
	Import   ImportConfig
}

// DatabaseConfig holds store-related configuration. DSN decides the backend:
// postgres:// goes through pgx, anything else is a sqlite path.
type DatabaseConfig struct {
	DSN             string
	MaxConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds daemon server configuration.
type ServerConfig struct {
	GRPCAddr string
}

// OCRConfig holds tesseract-related configuration.
type OCRConfig struct {
	Tesseract   string
	Lang        string
	TessdataDir string
	PSM         int
}

// ImportConfig holds schedule-import configuration: where photos arrive and
// whose shifts to look for.
type ImportConfig struct {
	InboxDirs  []string
	WorkerName string
	Aliases    []string
	Debounce   time.Duration
	Workers    int
	JobTimeout time.Duration
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", "turnos.db"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Lang:        getEnv("TESSERACT_LANG", "spa"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("TESSERACT_PSM", 0),
		},
		Import: ImportConfig{
			InboxDirs:  getEnvAsList("INBOX_DIRS", nil),
			WorkerName: getEnv("WORKER_NAME", ""),
			Aliases:    getEnvAsList("WORKER_ALIASES", nil),
			Debounce:   getEnvAsDuration("INBOX_DEBOUNCE", 2*time.Second),
			Workers:    getEnvAsInt("IMPORT_WORKERS", 2),
			JobTimeout: getEnvAsDuration("IMPORT_JOB_TIMEOUT", 2*time.Minute),
		},
	}
}

// Validate checks the configuration required by the daemon.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if len(c.Import.InboxDirs) == 0 {
		return NewAppError("CONFIG_ERROR", "INBOX_DIRS is required", ErrInvalidInput)
	}
	if c.Import.WorkerName == "" {
		return NewAppError("CONFIG_ERROR", "WORKER_NAME is required", ErrInvalidInput)
	}
	if len(c.Import.Aliases) == 0 {
		return NewAppError("CONFIG_ERROR", "WORKER_ALIASES is required", ErrInvalidInput)
	}
	if c.Server.GRPCAddr == "" {
		return NewAppError("CONFIG_ERROR", "GRPC_ADDR is required", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
