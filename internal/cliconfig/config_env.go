package cliconfig

import "os"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VAULTSWEEP_"

// ApplyEnvConfig applies configuration from environment variables (VAULTSWEEP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setInt64FromString(FlagVaultID, os.Getenv(EnvPrefix+"VAULT_ID"), &cfg.VaultID); err != nil {
		return err
	}
	s.setString(FlagToken, os.Getenv(EnvPrefix+"TOKEN"), &cfg.Token)
	s.setString(FlagServiceURL, os.Getenv(EnvPrefix+"SERVICE_URL"), &cfg.ServiceURL)
	s.setString(FlagLogDir, os.Getenv(EnvPrefix+"LOG_DIR"), &cfg.LogDir)
	s.setString(FlagMetricsFile, os.Getenv(EnvPrefix+"METRICS_FILE"), &cfg.MetricsFile)
	s.setString(FlagReportFile, os.Getenv(EnvPrefix+"REPORT_FILE"), &cfg.ReportFile)

	if err := s.setDuration(FlagTimeout, os.Getenv(EnvPrefix+"HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setIntFromString(FlagPageSize, os.Getenv(EnvPrefix+"PAGE_SIZE"), &cfg.PageSize); err != nil {
		return err
	}

	s.setBoolFromString(FlagDryRun, os.Getenv(EnvPrefix+"DRY_RUN"), &cfg.DryRun)
	s.setBoolFromString(FlagQuiet, os.Getenv(EnvPrefix+"QUIET"), &cfg.Quiet)

	return nil
}
