package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points SECRETS_DIR at an empty directory and clears variables
// that would leak in from the developer's shell.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("CI", "")
	for _, key := range []string{"ENV", "DB_DRIVER", "DB_PATH", "JWT_SECRET", "IMAGE_STORAGE", "REDIS_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "database/tastyshare.db", cfg.DBPath)
	assert.Equal(t, StorageLocal, cfg.ImageStorage)
	assert.Equal(t, "images", cfg.ImageDir)
	assert.Equal(t, 5, cfg.ImageMaxUploadMB)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.LoginAttemptWindow)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "tasty")
	t.Setenv("DB_NAME", "tastyshare")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "host=db port=5432 user=tasty password=from-env dbname=tastyshare sslmode=disable", cfg.PostgresDSN())
}

func TestSecretsOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	t.Setenv("JWT_SECRET", "from-env")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret-file\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret-file", cfg.JWTSecret)
}

func TestProductionRejectsDefaultSecret(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:              Development,
			ServerPort:       "8080",
			DBDriver:         DriverSQLite,
			DBPath:           "test.db",
			ImageStorage:     StorageLocal,
			ImageDir:         "images",
			ImageMaxUploadMB: 1,
			TokenTTL:         time.Hour,
			JWTSecret:        "secret",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: "DB_DRIVER"},
		{name: "postgres without host", mutate: func(c *Config) { c.DBDriver = DriverPostgres }, wantErr: "DB_HOST"},
		{name: "unknown storage", mutate: func(c *Config) { c.ImageStorage = "ftp" }, wantErr: "IMAGE_STORAGE"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.ImageStorage = StorageS3 }, wantErr: "S3_BUCKET_NAME"},
		{name: "zero upload limit", mutate: func(c *Config) { c.ImageMaxUploadMB = 0 }, wantErr: "IMAGE_MAX_UPLOAD_MB"},
		{name: "short production secret", mutate: func(c *Config) { c.Env = Production }, wantErr: "at least 32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("PROD"))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
