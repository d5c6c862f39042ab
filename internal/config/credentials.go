package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"betfast-props-scraper/internal/auth"
)

// LoadCredentials reads the portal credentials from the environment once at
// startup. Everything below main receives the value by parameter; nothing
// else reads the environment.
func LoadCredentials() (auth.Credentials, error) {
	var creds auth.Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return auth.Credentials{}, fmt.Errorf("read credentials from environment: %w", err)
	}

	if err := creds.Validate(); err != nil {
		return auth.Credentials{}, err
	}

	return creds, nil
}
