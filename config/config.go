package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageS3    = "s3"

	// DefaultJWTSecret is only acceptable outside production
	DefaultJWTSecret = "tastyshare-dev-secret-change-me"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerHost     string
	ServerPort     string
	AllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. Empty RedisURL disables Redis.
	RedisURL      string
	RedisPassword string

	// Session configuration
	JWTSecret          string
	TokenTTL           time.Duration
	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration

	// Image storage configuration
	ImageStorage     string
	ImageDir         string
	ImageMaxUploadMB int
	S3BucketName     string
	AWSRegion        string

	LogLevel string
}

// LoadConfig builds a Config from a .env file (if present), environment
// variables and Docker secrets, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env:                GetEnvironment(),
		ServerHost:         v.GetString("SERVER_HOST"),
		ServerPort:         v.GetString("SERVER_PORT"),
		AllowedOrigins:     splitList(v.GetString("ALLOWED_ORIGINS")),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBPath:             v.GetString("DB_PATH"),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             v.GetString("DB_NAME"),
		DBSSLMode:          v.GetString("DB_SSL_MODE"),
		RedisURL:           v.GetString("REDIS_URL"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		TokenTTL:           v.GetDuration("TOKEN_TTL"),
		LoginAttemptLimit:  v.GetInt("LOGIN_ATTEMPT_LIMIT"),
		LoginAttemptWindow: v.GetDuration("LOGIN_ATTEMPT_WINDOW"),
		ImageStorage:       strings.ToLower(v.GetString("IMAGE_STORAGE")),
		ImageDir:           v.GetString("IMAGE_DIR"),
		ImageMaxUploadMB:   v.GetInt("IMAGE_MAX_UPLOAD_MB"),
		S3BucketName:       v.GetString("S3_BUCKET_NAME"),
		AWSRegion:          v.GetString("AWS_REGION"),
		LogLevel:           v.GetString("LOG_LEVEL"),
	}

	// Docker secrets override plain environment values
	if s := readSecret("jwt_secret"); s != "" {
		cfg.JWTSecret = s
	}
	if s := readSecret("db_password"); s != "" {
		cfg.DBPassword = s
	}
	if s := readSecret("redis_password"); s != "" {
		cfg.RedisPassword = s
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "database/tastyshare.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("LOGIN_ATTEMPT_LIMIT", 5)
	v.SetDefault("LOGIN_ATTEMPT_WINDOW", "15m")
	v.SetDefault("IMAGE_STORAGE", StorageLocal)
	v.SetDefault("IMAGE_DIR", "images")
	v.SetDefault("IMAGE_MAX_UPLOAD_MB", 5)
	v.SetDefault("S3_BUCKET_NAME", "tastyshare-recipe-images")
	v.SetDefault("LOG_LEVEL", "info")
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PostgresDSN renders the libpq connection string for the configured database
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
