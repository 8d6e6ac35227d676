package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"JWT_ACCESS_TOKEN_SECRET": "s3cret"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "3000", cfg.AppPort)
				assert.Equal(t, StoragePostgres, cfg.Storage)
				assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
				assert.Equal(t, "notifications", cfg.AMQPQueue)
				assert.Equal(t, 10*time.Second, cfg.SMTPTimeout)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"JWT_ACCESS_TOKEN_SECRET": "s3cret",
				"STORAGE":                 "Memory",
				"JWT_TTL":                 "15m",
				"APP_PORT":                "8080",
				"ADMIN_USERNAME":          "root",
				"SMTP_TIMEOUT":            "3s",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StorageMemory, cfg.Storage)
				assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
				assert.Equal(t, "8080", cfg.AppPort)
				assert.Equal(t, "root", cfg.AdminUsername)
				assert.Equal(t, 3*time.Second, cfg.SMTPTimeout)
			},
		},
		{
			name:    "missing secret",
			env:     map[string]string{"JWT_ACCESS_TOKEN_SECRET": ""},
			wantErr: ErrMissingJWTSecret,
		},
		{
			name:    "negative ttl",
			env:     map[string]string{"JWT_ACCESS_TOKEN_SECRET": "s3cret", "JWT_TTL": "-1h"},
			wantErr: ErrInvalidJWTTTL,
		},
		{
			name:    "unknown storage",
			env:     map[string]string{"JWT_ACCESS_TOKEN_SECRET": "s3cret", "STORAGE": "sqlite"},
			wantErr: ErrUnknownStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
