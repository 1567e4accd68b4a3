package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	vaulthttp "github.com/bft-labs/vaultsweep/internal/adapters/http"
	"github.com/bft-labs/vaultsweep/internal/domain"
)

// DefaultServiceURL is the vault collection root of the service.
const DefaultServiceURL = vaulthttp.DefaultBaseURL

// Flag names. File and environment values never override a flag the user set.
const (
	FlagVaultID     = "vault_id"
	FlagToken       = "token"
	FlagFileID      = "file_id"
	FlagServiceURL  = "service-url"
	FlagTimeout     = "timeout"
	FlagPageSize    = "page-size"
	FlagLogDir      = "log-dir"
	FlagMetricsFile = "metrics-file"
	FlagReportFile  = "report-file"
	FlagDryRun      = "dry-run"
	FlagQuiet       = "quiet"
)

// Config holds CLI configuration for vaultsweep.
type Config struct {
	VaultID int64
	Token   string

	// FileID is only used by delete-file.
	FileID int64

	ServiceURL  string
	HTTPTimeout time.Duration
	PageSize    int

	LogDir      string
	MetricsFile string
	ReportFile  string

	DryRun bool
	Quiet  bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServiceURL:  DefaultServiceURL,
		HTTPTimeout: vaulthttp.DefaultTimeout,
		PageSize:    domain.DefaultPageSize,
		LogDir:      ".",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.VaultID <= 0 {
		return fmt.Errorf("%w: vault_id is required", domain.ErrInvalidConfig)
	}
	if c.Token == "" {
		return fmt.Errorf("%w: token is required", domain.ErrInvalidConfig)
	}

	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	c.ServiceURL = strings.TrimRight(c.ServiceURL, "/")

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.PageSize <= 0 || c.PageSize > domain.DefaultPageSize {
		return fmt.Errorf("%w: page size must be between 1 and %d", domain.ErrInvalidConfig, domain.DefaultPageSize)
	}
	if c.LogDir == "" {
		c.LogDir = "."
	}
	return nil
}

// RequireFileID checks the single-record id used by delete-file.
func (c *Config) RequireFileID() error {
	if c.FileID <= 0 {
		return fmt.Errorf("%w: file_id is required", domain.ErrInvalidConfig)
	}
	return nil
}

// Masked returns a copy safe to log.
func (c Config) Masked() Config {
	if c.Token != "" {
		c.Token = "*****"
	}
	return c
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt64 sets an int64 value if positive and flag not changed.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setInt64FromString parses a string to int64 and sets the destination if valid.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
