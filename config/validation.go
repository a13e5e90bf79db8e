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

// ValidateConfig checks that all configuration the current environment needs
// is present. Test keeps the requirements minimal so unit tests can run with
// an almost empty environment.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := map[string]string{
		"JWT_SECRET": cfg.JWTSecret,
	}

	if GetEnvironment() == Production {
		required["DB_USER"] = cfg.DBUser
		required["DB_PASSWORD"] = cfg.DBPassword
		required["TMDB_API_KEY"] = cfg.TMDBAPIKey
	}

	for name, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", name))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
