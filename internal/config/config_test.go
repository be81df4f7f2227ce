package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Auth:    Auth{JWTSecret: "s"},
		Storage: Storage{Backend: "memory"},
		Session: Session{Backend: "memory"},
		Archive: Archive{Backend: "none"},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: ErrMissingEnvironmentVariables},
		{name: "sheets without id", mutate: func(c *Config) { c.Storage.Backend = "sheets" }, wantErr: ErrMissingEnvironmentVariables},
		{name: "postgres without url", mutate: func(c *Config) { c.Storage.Backend = "postgres" }, wantErr: ErrMissingEnvironmentVariables},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Backend = "excel" }, wantErr: ErrUnknownBackend},
		{name: "unknown session", mutate: func(c *Config) { c.Session.Backend = "disk" }, wantErr: ErrUnknownBackend},
		{name: "gcs without bucket", mutate: func(c *Config) { c.Archive.Backend = "gcs" }, wantErr: ErrMissingEnvironmentVariables},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDB_DSN(t *testing.T) {
	t.Parallel()

	_, err := DB{}.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)

	dsn, err := DB{URL: "postgres://x"}.DSN()
	assert.NoError(t, err)
	assert.Equal(t, "postgres://x", dsn)
}
