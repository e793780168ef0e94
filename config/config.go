package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Snapshot backends
const (
	SnapshotBackendSQLite = "sqlite"
	SnapshotBackendRedis  = "redis"
	SnapshotBackendMemory = "memory"
)

type Config struct {
	ServerPort    string
	PDFServerPort string
	DBPath        string
	Environment   string
	UploadDir     string
	// Snapshot persistence
	SnapshotBackend string
	SnapshotKey     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	// Turso (remote libsql)
	TursoDatabaseURL string
	TursoAuthToken   string
	// PDF rendering
	FrontendURL        string
	ChromePath         string
	PDFSettleMillis    int
	PDFServerURL       string
	SanitizeExportHTML bool
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	// Export archive
	ExportRetentionDays int
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	backend := strings.ToLower(getEnv("SNAPSHOT_BACKEND", SnapshotBackendSQLite))
	if !IsValidSnapshotBackend(backend) {
		log.Printf("[WARNING] Unknown SNAPSHOT_BACKEND %q, using %s", backend, SnapshotBackendSQLite)
		backend = SnapshotBackendSQLite
	}

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		PDFServerPort:       getEnv("PDF_SERVER_PORT", "3001"),
		DBPath:              getEnv("DB_PATH", "db/app.db"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		UploadDir:           getEnv("UPLOAD_DIR", "static/uploads"),
		SnapshotBackend:     backend,
		SnapshotKey:         getEnv("SNAPSHOT_KEY", "harvester-datasheet-data"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		TursoDatabaseURL:    getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:      os.Getenv("TURSO_AUTH_TOKEN"),
		FrontendURL:         getEnv("FRONTEND_URL", "*"),
		ChromePath:          getEnv("CHROME_PATH", ""),
		PDFSettleMillis:     getEnvInt("PDF_SETTLE_MS", 1000),
		PDFServerURL:        getEnv("PDF_SERVER_URL", "http://localhost:3001"),
		SanitizeExportHTML:  getEnvBool("SANITIZE_EXPORT_HTML", true),
		R2AccountID:         getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:       getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:   os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:        getEnv("R2_BUCKET_NAME", ""),
		ExportRetentionDays: getEnvInt("EXPORT_RETENTION_DAYS", 30),
	}
}

// R2Configured reports whether every R2 setting needed for the export archive is present
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

// IsValidSnapshotBackend checks if the backend name is supported
func IsValidSnapshotBackend(backend string) bool {
	return backend == SnapshotBackendSQLite || backend == SnapshotBackendRedis || backend == SnapshotBackendMemory
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[WARNING] Invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
