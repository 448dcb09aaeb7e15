package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that every setting the server cannot run without is
// present. Test environments get a generated token secret instead of
// failing, so local `go test` runs need no environment.
func ValidateConfig(cfg *Config) error {
	var missing []string

	if cfg.DBUser == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if cfg.TokenSecret == "" {
		if IsTest() {
			cfg.TokenSecret = "test-token-secret"
		} else {
			missing = append(missing, "TOKEN_SECRET")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if cfg.ServerPort == "" {
		return fmt.Errorf("server port must not be empty")
	}
	switch cfg.DBSSLMode {
	case "disable", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("invalid DB_SSL_MODE: %s", cfg.DBSSLMode)
	}

	return nil
}
