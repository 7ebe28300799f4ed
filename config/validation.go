package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration against the rules for its environment
func ValidateConfig(cfg *Config) error {
	var problems []ValidationError

	if cfg.ServerPort == "" {
		problems = append(problems, ValidationError{"SERVER_PORT", "is required"})
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			problems = append(problems, ValidationError{"DB_PATH", "is required for sqlite"})
		}
	case DriverPostgres:
		for field, value := range map[string]string{
			"DB_HOST": cfg.DBHost,
			"DB_USER": cfg.DBUser,
			"DB_NAME": cfg.DBName,
		} {
			if value == "" {
				problems = append(problems, ValidationError{field, "is required for postgres"})
			}
		}
	default:
		problems = append(problems, ValidationError{"DB_DRIVER", fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	switch cfg.ImageStorage {
	case StorageLocal:
		if cfg.ImageDir == "" {
			problems = append(problems, ValidationError{"IMAGE_DIR", "is required for local storage"})
		}
	case StorageS3:
		if cfg.S3BucketName == "" {
			problems = append(problems, ValidationError{"S3_BUCKET_NAME", "is required for s3 storage"})
		}
	default:
		problems = append(problems, ValidationError{"IMAGE_STORAGE", fmt.Sprintf("unknown backend %q", cfg.ImageStorage)})
	}

	if cfg.ImageMaxUploadMB <= 0 {
		problems = append(problems, ValidationError{"IMAGE_MAX_UPLOAD_MB", "must be positive"})
	}
	if cfg.TokenTTL <= 0 {
		problems = append(problems, ValidationError{"TOKEN_TTL", "must be positive"})
	}

	if cfg.JWTSecret == "" {
		problems = append(problems, ValidationError{"JWT_SECRET", "is required"})
	} else if cfg.IsProduction() {
		if cfg.JWTSecret == DefaultJWTSecret {
			problems = append(problems, ValidationError{"JWT_SECRET", "must be changed from the default in production"})
		}
		if len(cfg.JWTSecret) < 32 {
			problems = append(problems, ValidationError{"JWT_SECRET", "must be at least 32 characters in production"})
		}
	}

	if len(problems) == 0 {
		return nil
	}

	msgs := make([]string, len(problems))
	for i, p := range problems {
		msgs[i] = p.Error()
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
}
