package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Mode selects the query backend. It is fixed for the lifetime of the process.
type Mode string

const (
	// ModeServer queries a server-side analytical database file (or PostgreSQL).
	ModeServer Mode = "server"
	// ModeEmbedded loads snapshot files into an in-process engine.
	ModeEmbedded Mode = "embedded"
)

// Supported server-mode database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MaxTolerancePct is the upper bound accepted for a tolerance percentage.
const MaxTolerancePct = 50

// DatabaseConfig holds server-mode database settings.
// Path is used by the sqlite driver; the remaining fields by postgres.
type DatabaseConfig struct {
	Driver             string
	Path               string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// SnapshotConfig holds the three embedded-mode snapshot locations.
// Each location is a local path, an s3://bucket/key URL or an http(s) URL.
// Only SKU is expected; events and exceptions are optional.
type SnapshotConfig struct {
	SKU        string
	Events     string
	Exceptions string
}

// MinIOConfig holds object storage settings used to fetch s3:// snapshots.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost             string
	Port                string
	Mode                Mode
	DefaultTolerancePct int
	LogLevel            string
	CORSAllowOrigins    string
	Database            DatabaseConfig
	Snapshots           SnapshotConfig
	MinIO               MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:             getEnv("APP_HOST", "localhost:8080"),
		Port:                getEnv("PORT", "8080"),
		Mode:                ParseMode(getEnv("RECON_MODE", string(ModeServer))),
		DefaultTolerancePct: getEnvInt("DEFAULT_TOLERANCE_PCT", 10),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigins:    getEnv("CORS_ALLOW_ORIGINS", "*"),
		Database: DatabaseConfig{
			Driver:             strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			Path:               getEnv("DB_PATH", getEnv("DUCKDB_PATH", "out_recon/sku_master_v2.db")),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Snapshots: SnapshotConfig{
			SKU:        getEnv("SNAPSHOT_URL_SKU", getEnv("NEXT_PUBLIC_PARQUET_URL_SKU", "")),
			Events:     getEnv("SNAPSHOT_URL_EVENTS", getEnv("NEXT_PUBLIC_PARQUET_URL_EVENTS", "")),
			Exceptions: getEnv("SNAPSHOT_URL_EXCEPTIONS", getEnv("NEXT_PUBLIC_PARQUET_URL_EXCEPTIONS", "")),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// ParseMode maps a mode selector to a Mode. The single-letter aliases
// A (embedded) and B (server) are accepted. Unknown values are returned as-is
// so Validate can reject them.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", string(ModeEmbedded):
		return ModeEmbedded
	case "b", string(ModeServer):
		return ModeServer
	default:
		return Mode(s)
	}
}

// Validate ensures the configuration describes a usable backend.
func (c *AppConfig) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Port == "" {
		return errors.New("PORT must be provided")
	}
	if c.DefaultTolerancePct < 0 || c.DefaultTolerancePct > MaxTolerancePct {
		return fmt.Errorf("DEFAULT_TOLERANCE_PCT must be between 0 and %d", MaxTolerancePct)
	}

	switch c.Mode {
	case ModeServer:
		switch c.Database.Driver {
		case DriverSQLite:
			if c.Database.Path == "" {
				return errors.New("DB_PATH must be provided for the sqlite driver")
			}
		case DriverPostgres:
			if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
				return errors.New("DB_HOST, DB_USER and DB_NAME must be provided for the postgres driver")
			}
		default:
			return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
		}
	case ModeEmbedded:
		// Every snapshot is optional; an absent SKU snapshot renders empty views.
	default:
		return fmt.Errorf("unsupported RECON_MODE %q", c.Mode)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
