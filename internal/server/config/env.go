package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type lookupFunc func(key string) (string, bool)

// Environment variable names.
const (
	envAddr               = "USERKEEPER_ADDR"
	envSecret             = "JWT_SECRET"
	envTokenTTL           = "ACCESS_TOKEN_TTL"
	envPasswordHasher     = "PASSWORD_HASHER"
	envBcryptCost         = "BCRYPT_COST"
	envLogLevel           = "LOG_LEVEL"
	envExposePasswordHash = "EXPOSE_PASSWORD_HASH"
	envSeedName           = "SEED_USER_NAME"
	envSeedEmail          = "SEED_USER_EMAIL"
	envSeedPassword       = "SEED_USER_PASSWORD"
	envShutdownTimeout    = "SHUTDOWN_TIMEOUT"
)

// loadDotEnv copies variables from the file at path into the process
// environment. Variables already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays values found through lookup. SEED_USER_EMAIL may be set
// to an empty string to disable seeding.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(envAddr, &cfg.EndpointAddrHTTP)
	str(envSecret, &cfg.SecretKey)
	str(envPasswordHasher, &cfg.PasswordHasher)
	str(envLogLevel, &cfg.LogLevel)
	str(envSeedName, &cfg.SeedUserName)
	str(envSeedPassword, &cfg.SeedUserPassword)

	if v, ok := lookup(envSeedEmail); ok {
		cfg.SeedUserEmail = v
	}

	if v, ok := lookup(envTokenTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envTokenTTL, err)
		}
		cfg.AccessTokenValidityDuration = d
	}

	if v, ok := lookup(envShutdownTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envShutdownTimeout, err)
		}
		cfg.ShutdownTimeout = d
	}

	if v, ok := lookup(envBcryptCost); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envBcryptCost, err)
		}
		cfg.BcryptCost = n
	}

	if v, ok := lookup(envExposePasswordHash); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envExposePasswordHash, err)
		}
		cfg.ExposePasswordHash = b
	}

	return nil
}
