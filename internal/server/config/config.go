// Package config handles configuration for the server component,
// including defaults, environment (.env), JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// Config holds runtime settings for the userkeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required, no default.
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - PasswordHasher / BcryptCost: password hashing algorithm and bcrypt work factor.
//   - ExposePasswordHash: include stored hashes in user payloads.
//   - SeedUser*: bootstrap record created at startup; skipped when the email is empty.
//   - ShutdownTimeout: how long in-flight requests may take after a stop signal.
type Config struct {
	EndpointAddrHTTP            string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	PasswordHasher              string
	BcryptCost                  int
	LogLevel                    string
	ExposePasswordHash          bool
	SeedUserName                string
	SeedUserEmail               string
	SeedUserPassword            string
	ShutdownTimeout             time.Duration
}

// LoadDefaults populates Config with development defaults. The secret is
// deliberately left empty.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.AccessTokenValidityDuration = time.Hour
	c.PasswordHasher = "bcrypt"
	c.BcryptCost = 10
	c.LogLevel = "info"
	c.ExposePasswordHash = false
	c.SeedUserName = "Admin"
	c.SeedUserEmail = "admin@example.com"
	c.SeedUserPassword = "password123"
	c.ShutdownTimeout = 5 * time.Second
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return common.ErrMissingSecret
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("access token validity must be positive, got %s", c.AccessTokenValidityDuration)
	}
	if c.SeedUserEmail != "" && c.SeedUserPassword == "" {
		return errors.New("seed user password is required when seed email is set")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from .env and the environment, an optional JSON file and finally from
// command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], ".env", os.LookupEnv)
}

func load(args []string, dotEnvPath string, lookup lookupFunc) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(dotEnvPath); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
