package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/vaultsweep/internal/adapters/fs"
	vaulthttp "github.com/bft-labs/vaultsweep/internal/adapters/http"
	logAdapter "github.com/bft-labs/vaultsweep/internal/adapters/log"
	"github.com/bft-labs/vaultsweep/internal/app"
	"github.com/bft-labs/vaultsweep/internal/cliconfig"
	"github.com/bft-labs/vaultsweep/internal/domain"
	"github.com/bft-labs/vaultsweep/internal/metrics"
	"github.com/bft-labs/vaultsweep/internal/ports"
	"github.com/bft-labs/vaultsweep/pkg/vaultsweep"
)

const helpDescription = `
Bulk-delete or discard the records of a CDD Vault.

Each command walks a vault collection page by page and applies one request per
record. A failed record is logged and the walk moves on; the command exits
non-zero if anything failed. Every run writes a log file under
<log-dir>/logs_YYYY-MM-DD/.

Batches cannot be deleted through the API; delete-batches detaches them from
every project instead. ELN entries are discarded, not deleted.
`

var exampleUsage = strings.TrimSpace(`
  vaultsweep delete-samples -v 1234 -t <api-token>
  vaultsweep discard-elns --vault_id 1234 --token <api-token> --dry-run
  vaultsweep delete-file -v 1234 -t <api-token> -f 98765
  vaultsweep delete-batches --config $HOME/.vaultsweep/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// options are the values bound to command line flags.
type options struct {
	cfg      cliconfig.Config
	cfgPath  string
	helpFlag string
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("vaultsweep")
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	o := &options{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           "vaultsweep",
		Short:         "Bulk-delete or discard records in a CDD Vault",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.cfgPath, "config", "", "path to config file (default: $HOME/.vaultsweep/config.toml)")
	pf.Int64VarP(&o.cfg.VaultID, cliconfig.FlagVaultID, "v", 0, "vault id")
	pf.StringVarP(&o.cfg.Token, cliconfig.FlagToken, "t", "", "API token sent as "+vaulthttp.TokenHeader)

	pf.StringVar(&o.cfg.ServiceURL, cliconfig.FlagServiceURL, o.cfg.ServiceURL, fmt.Sprintf("vault collection URL (defaults to %s; override only for testing)", cliconfig.DefaultServiceURL))
	pf.DurationVar(&o.cfg.HTTPTimeout, cliconfig.FlagTimeout, o.cfg.HTTPTimeout, "timeout of each HTTP request")
	pf.IntVar(&o.cfg.PageSize, cliconfig.FlagPageSize, o.cfg.PageSize, "records requested per list call (service maximum 1000)")
	pf.StringVar(&o.cfg.LogDir, cliconfig.FlagLogDir, o.cfg.LogDir, "directory holding the dated log folders")
	pf.StringVar(&o.cfg.MetricsFile, cliconfig.FlagMetricsFile, "", "write run metrics in Prometheus text format to this file")
	pf.StringVar(&o.cfg.ReportFile, cliconfig.FlagReportFile, "", "write a JSON summary of the run to this file")
	pf.BoolVar(&o.cfg.DryRun, cliconfig.FlagDryRun, false, "list the records that would be changed without changing them")
	pf.BoolVar(&o.cfg.Quiet, cliconfig.FlagQuiet, false, "log to the file only")
	pf.StringVar(&o.helpFlag, "help_flag", "", "show help; the value is ignored")

	for _, name := range []string{cliconfig.FlagServiceURL, cliconfig.FlagPageSize, "help_flag"} {
		if err := pf.MarkHidden(name); err != nil {
			panic(err)
		}
	}

	for _, name := range app.ToolNames() {
		root.AddCommand(newToolCommand(app.Tools[name], o))
	}
	return root
}

func newToolCommand(tool app.Tool, o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   tool.Name,
		Short: tool.Short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("help_flag") {
				return cmd.Help()
			}
			return runTool(cmd, tool, o)
		},
	}
	if !tool.Bulk {
		cmd.Flags().Int64VarP(&o.cfg.FileID, cliconfig.FlagFileID, "f", 0, "id of the "+tool.Resource.Name+" to delete")
	}
	return cmd
}

// loadConfig layers the config file and VAULTSWEEP_* variables under the
// flags the user set, then validates the result.
func loadConfig(cmd *cobra.Command, o *options) (cliconfig.Config, error) {
	cfg := o.cfg

	cfgFile := o.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if o.cfgPath != "" && !cliconfig.FileExists(o.cfgPath) {
		return cfg, fmt.Errorf("%w: config file %s not found", domain.ErrInvalidConfig, o.cfgPath)
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runTool(cmd *cobra.Command, tool app.Tool, o *options) error {
	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}

	var recordID string
	if !tool.Bulk {
		if err := cfg.RequireFileID(); err != nil {
			return err
		}
		recordID = domain.RecordIDFromInt(cfg.FileID).String()
	}

	sink, err := logAdapter.OpenSink(cfg.LogDir, time.Now())
	if err != nil {
		return err
	}
	defer sink.Close()

	var console io.Writer
	if !cfg.Quiet {
		console = cmd.ErrOrStderr()
	}
	runID := uuid.NewString()
	logger := logAdapter.NewZerologAdapter(logAdapter.NewLogger(sink, console, runID))
	logger.Info("configuration",
		ports.Any("config", cfg.Masked()),
		ports.String("log_file", sink.Path()),
	)

	libCfg := vaultsweep.Config{
		VaultID:     cfg.VaultID,
		Token:       cfg.Token,
		ServiceURL:  cfg.ServiceURL,
		HTTPTimeout: cfg.HTTPTimeout,
		PageSize:    cfg.PageSize,
		DryRun:      cfg.DryRun,
	}

	recorder := metrics.NewRecorder()
	sweep, err := vaultsweep.New(libCfg,
		vaultsweep.WithLogger(logger),
		vaultsweep.WithObserver(recorder),
	)
	if err != nil {
		return fmt.Errorf("create vaultsweep: %w", err)
	}

	report, runErr := sweep.Run(cmd.Context(), tool.Name, recordID)

	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("failed to write metrics file", ports.String("path", cfg.MetricsFile), ports.Err(err))
			runErr = errors.Join(runErr, err)
		}
	}
	if cfg.ReportFile != "" {
		summary := summarize(runID, tool, report, runErr, sink.Path(), time.Now())
		if err := fs.NewReportFile(cfg.ReportFile).Save(context.Background(), summary); err != nil {
			logger.Warn("failed to write report file", ports.String("path", cfg.ReportFile), ports.Err(err))
			runErr = errors.Join(runErr, err)
		}
	}
	return runErr
}

func summarize(runID string, tool app.Tool, rep vaultsweep.Report, runErr error, logFile string, finished time.Time) fs.RunSummary {
	s := fs.RunSummary{
		RunID:           runID,
		Tool:            tool.Name,
		Resource:        tool.Resource.Path,
		Verb:            string(tool.Verb),
		VaultID:         rep.VaultID,
		DryRun:          rep.DryRun,
		Total:           rep.Total,
		PagesPlanned:    rep.PagesPlanned,
		PagesFetched:    rep.PagesFetched,
		Attempted:       rep.Attempted,
		Succeeded:       rep.Succeeded,
		Failed:          rep.Failed,
		Clean:           runErr == nil && rep.Clean(),
		DurationSeconds: rep.Duration.Seconds(),
		FinishedAt:      finished.UTC(),
		LogFile:         logFile,
	}
	if rep.FailedOffset >= 0 {
		offset := rep.FailedOffset
		s.FailedOffset = &offset
	}
	if runErr != nil {
		s.Error = runErr.Error()
	}
	return s
}
