// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port           string
	AppEnv         string
	RequestTimeout time.Duration

	// Postgres. DatabaseURL wins when set; otherwise it is built from the DB* fields.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBName      string
	DBUser      string
	DBPassword  string
	DBSSLMode   string

	// Object storage (AWS S3 by default, any S3-compatible endpoint works)
	StorageAccessKey        string
	StorageSecretKey        string
	StorageRegion           string
	StorageBucket           string
	StorageEndpoint         string
	StorageUseSSL           bool
	StoragePublicBase       string // browser-accessible base URL, e.g. "https://posts.s3.eu-west-1.amazonaws.com"
	StorageEnsureBucket     bool
	StorageCleanupOnFailure bool

	UploadField    string
	MaxUploadBytes int64
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_DATABASE", "posts"),
		DBUser:      getEnv("DB_USERNAME", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		StorageAccessKey:        os.Getenv("AWS_ACCESS_KEY_ID"),
		StorageSecretKey:        os.Getenv("AWS_SECRET_ACCESS_KEY"),
		StorageRegion:           getEnv("AWS_REGION", "us-east-1"),
		StorageBucket:           getEnv("AWS_BUCKET_NAME", "posts"),
		StorageEndpoint:         getEnv("STORAGE_ENDPOINT", "s3.amazonaws.com"),
		StorageUseSSL:           getBool("STORAGE_USE_SSL", true),
		StoragePublicBase:       os.Getenv("STORAGE_PUBLIC_BASE"),
		StorageEnsureBucket:     getBool("STORAGE_ENSURE_BUCKET", false),
		StorageCleanupOnFailure: getBool("STORAGE_CLEANUP_ON_FAILURE", false),

		UploadField:    getEnv("UPLOAD_FIELD", "image"),
		MaxUploadBytes: getInt64("MAX_UPLOAD_BYTES", 10<<20),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.buildDatabaseURL()
	}
	if cfg.StoragePublicBase == "" {
		cfg.StoragePublicBase = cfg.defaultPublicBase()
	}
	return cfg
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) buildDatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// defaultPublicBase derives the virtual-hosted URL for AWS, and a path-style
// URL for any other endpoint (MinIO, ArvanCloud, ...).
func (c *Config) defaultPublicBase() string {
	if strings.HasSuffix(c.StorageEndpoint, "amazonaws.com") {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.StorageBucket, c.StorageRegion)
	}
	scheme := "http"
	if c.StorageUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, c.StorageEndpoint, c.StorageBucket)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
