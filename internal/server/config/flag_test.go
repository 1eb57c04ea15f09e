package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		start     *Config
		expected  *Config
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "127.0.0.1:9090", "-s", "secret", "-t", "15", "-k", "argon2id", "-l", "debug"},
			start: &Config{
				AccessTokenValidityDuration: time.Hour,
				BcryptCost:                  10,
			},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 15 * time.Minute,
				PasswordHasher:              "argon2id",
				LogLevel:                    "debug",
				BcryptCost:                  10,
			},
		},
		{
			name:     "without -t sub-minute ttl is preserved",
			args:     []string{"-c", "ignored.json", "-s", "x"},
			start:    &Config{AccessTokenValidityDuration: 30 * time.Second},
			expected: &Config{AccessTokenValidityDuration: 30 * time.Second, SecretKey: "x"},
		},
		{
			name:      "bad integer",
			args:      []string{"-t", "soon"},
			start:     &Config{},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseFlags(tt.start, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, tt.start))
		})
	}
}
