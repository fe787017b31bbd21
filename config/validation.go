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

// ValidateConfig checks that the loaded configuration is complete enough to
// start the service. Development and test fall back to defaults, so only
// values without a sane default are enforced there.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBHost == "" {
		errors = append(errors, "database host is not set")
	}
	if cfg.DBName == "" {
		errors = append(errors, "database name is not set")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT secret is not set")
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required")
		}
		if cfg.RedisPassword == "" {
			errors = append(errors, "redis_password secret is required")
		}
		if cfg.JWTSecret == "your-secret-key" {
			errors = append(errors, "jwt_secret must not use the development default")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
