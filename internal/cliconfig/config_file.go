package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
// The record id is per invocation and has no file setting.
type FileConfig struct {
	VaultID     int64  `toml:"vault_id"`
	Token       string `toml:"token"`
	ServiceURL  string `toml:"service_url"`
	HTTPTimeout string `toml:"http_timeout"`
	PageSize    int    `toml:"page_size"`
	LogDir      string `toml:"log_dir"`
	MetricsFile string `toml:"metrics_file"`
	ReportFile  string `toml:"report_file"`
	DryRun      *bool  `toml:"dry_run"`
	Quiet       *bool  `toml:"quiet"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.vaultsweep/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".vaultsweep", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt64(FlagVaultID, fc.VaultID, &cfg.VaultID)
	s.setString(FlagToken, fc.Token, &cfg.Token)
	s.setString(FlagServiceURL, fc.ServiceURL, &cfg.ServiceURL)
	s.setString(FlagLogDir, fc.LogDir, &cfg.LogDir)
	s.setString(FlagMetricsFile, fc.MetricsFile, &cfg.MetricsFile)
	s.setString(FlagReportFile, fc.ReportFile, &cfg.ReportFile)

	if err := s.setDuration(FlagTimeout, fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setInt(FlagPageSize, fc.PageSize, &cfg.PageSize)

	s.setBool(FlagDryRun, fc.DryRun, &cfg.DryRun)
	s.setBool(FlagQuiet, fc.Quiet, &cfg.Quiet)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
