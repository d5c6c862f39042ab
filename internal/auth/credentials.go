package auth

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials means the portal credentials were absent or empty.
// It is a configuration problem; no browser is launched when it fires.
var ErrMissingCredentials = errors.New("BETFAST_USERNAME and BETFAST_PASSWORD environment variables must be set")

// Credentials authenticate one run against the portal. They live in memory
// for the duration of the run and are never persisted or logged.
type Credentials struct {
	Username string `envconfig:"BETFAST_USERNAME"`
	Password string `envconfig:"BETFAST_PASSWORD"`
}

func (c Credentials) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("%w: BETFAST_USERNAME is empty", ErrMissingCredentials)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: BETFAST_PASSWORD is empty", ErrMissingCredentials)
	}
	return nil
}
