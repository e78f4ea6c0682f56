package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings read from the environment
type Config struct {
	Env               string
	Port              string
	DatabaseURL       string
	RedisAddr         string
	RedisPassword     string
	JWTSecret         string
	CredentialsPath   string
	DriveFolderID     string
	UploadDir         string
	PublicBaseURL     string
	UploadSessionTTL  time.Duration
	ChromePath        string
	MigrationsEnabled bool
}

// Load reads the configuration from environment variables, applying defaults
func Load() (*Config, error) {
	cfg := &Config{
		Env:               getEnv("ENV", "development"),
		Port:              strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CredentialsPath:   os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID:     os.Getenv("DRIVE_FOLDER_ID"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		ChromePath:        os.Getenv("CHROME_PATH"),
		UploadSessionTTL:  30 * time.Minute,
		MigrationsEnabled: true,
	}

	cfg.PublicBaseURL = strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port), "/")

	if raw := os.Getenv("UPLOAD_SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid UPLOAD_SESSION_TTL %q: must be a positive duration", raw)
		}
		cfg.UploadSessionTTL = ttl
	}

	if raw := os.Getenv("MIGRATIONS_ENABLED"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid MIGRATIONS_ENABLED %q: %w", raw, err)
		}
		cfg.MigrationsEnabled = enabled
	}

	dbURL, err := databaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = dbURL

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
		}
		log.Printf("⚠️  JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg, nil
}

// databaseURL returns DATABASE_URL or builds a connection string from DB_* variables
func databaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		getEnv("DB_PORT", "5432"),
		user,
		os.Getenv("DB_PASSWORD"),
		dbname,
		getEnv("DB_SSLMODE", "disable"),
	), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
