package cliconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/vaultsweep/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultServiceURL, cfg.ServiceURL)
	assert.Equal(t, 1000, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ".", cfg.LogDir)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.VaultID = 42
		cfg.Token = "secret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid minimal config", func(c *Config) {}, false},
		{"missing vault id", func(c *Config) { c.VaultID = 0 }, true},
		{"negative vault id", func(c *Config) { c.VaultID = -4 }, true},
		{"missing token", func(c *Config) { c.Token = "" }, true},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, true},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, true},
		{"page size above service limit", func(c *Config) { c.PageSize = 1001 }, true},
		{"small page size", func(c *Config) { c.PageSize = 10 }, false},
		{"empty service url defaults", func(c *Config) { c.ServiceURL = "" }, false},
		{"empty log dir defaults", func(c *Config) { c.LogDir = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	c := Config{
		VaultID:     1,
		Token:       "t",
		ServiceURL:  "http://localhost:8080/api/v1/vaults//",
		HTTPTimeout: time.Second,
		PageSize:    1000,
	}
	require.NoError(t, c.Validate())
	assert.Equal(t, "http://localhost:8080/api/v1/vaults", c.ServiceURL, "trailing slashes trimmed")
	assert.Equal(t, ".", c.LogDir)

	c2 := Config{VaultID: 1, Token: "t", HTTPTimeout: time.Second, PageSize: 5}
	require.NoError(t, c2.Validate())
	assert.Equal(t, DefaultServiceURL, c2.ServiceURL)
}

func TestConfig_RequireFileID(t *testing.T) {
	c := Config{}
	assert.ErrorIs(t, c.RequireFileID(), domain.ErrInvalidConfig)
	c.FileID = 7
	assert.NoError(t, c.RequireFileID())
}

func TestConfig_Masked(t *testing.T) {
	c := Config{Token: "secret"}
	assert.Equal(t, "*****", c.Masked().Token)
	assert.Equal(t, "secret", c.Token, "receiver must not change")
	assert.Empty(t, (Config{}).Masked().Token)
}
