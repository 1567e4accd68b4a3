package vaultsweep

import (
	"context"
	"fmt"
	"strings"
	"time"

	vaulthttp "github.com/bft-labs/vaultsweep/internal/adapters/http"
	logAdapter "github.com/bft-labs/vaultsweep/internal/adapters/log"
	"github.com/bft-labs/vaultsweep/internal/app"
	"github.com/bft-labs/vaultsweep/internal/domain"
)

// Tool names accepted by Run.
const (
	ToolDeleteFile    = app.ToolDeleteFile
	ToolDeleteBatches = app.ToolDeleteBatches
	ToolDeleteSamples = app.ToolDeleteSamples
	ToolDiscardELNs   = app.ToolDiscardELNs
)

// Errors returned by New and Run. Test with errors.Is.
var (
	ErrPartialFailure = domain.ErrPartialFailure
	ErrInvalidConfig  = domain.ErrInvalidConfig
	ErrUnknownTool    = domain.ErrUnknownTool
)

// DefaultServiceURL is the vault collection root of the service.
const DefaultServiceURL = vaulthttp.DefaultBaseURL

// Config holds the settings of a Vaultsweep instance.
type Config struct {
	VaultID int64
	Token   string

	ServiceURL  string
	HTTPTimeout time.Duration
	PageSize    int

	// DryRun lists records and logs what would change without changing it.
	DryRun bool
}

// DefaultConfig returns a Config with default values and no credentials.
func DefaultConfig() Config {
	return Config{
		ServiceURL:  DefaultServiceURL,
		HTTPTimeout: vaulthttp.DefaultTimeout,
		PageSize:    domain.DefaultPageSize,
	}
}

// SetDefaults fills unset optional fields.
func (c *Config) SetDefaults() {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	c.ServiceURL = strings.TrimRight(c.ServiceURL, "/")
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = vaulthttp.DefaultTimeout
	}
	if c.PageSize <= 0 {
		c.PageSize = domain.DefaultPageSize
	}
}

// Validate checks the credentials and the page size.
func (c Config) Validate() error {
	if c.VaultID <= 0 {
		return fmt.Errorf("%w: vault id is required", ErrInvalidConfig)
	}
	if c.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidConfig)
	}
	if c.PageSize > domain.DefaultPageSize {
		return fmt.Errorf("%w: page size above %d", ErrInvalidConfig, domain.DefaultPageSize)
	}
	return nil
}

// Vaultsweep runs bulk tools against one vault. Runs are sequential; an
// instance may be reused for several runs.
type Vaultsweep struct {
	config Config
	runner *app.Runner
}

// New creates a Vaultsweep for the vault and token in cfg.
func New(cfg Config, opts ...Option) (*Vaultsweep, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logAdapter.NewNoopLogger()
	}

	client := vaulthttp.NewClient(vaulthttp.ClientConfig{
		BaseURL: cfg.ServiceURL,
		Token:   cfg.Token,
		Timeout: cfg.HTTPTimeout,
	}, o.httpClient, o.logger)

	sweeper := app.NewSweeper(app.SweeperConfig{PageSize: cfg.PageSize}, client, o.logger, o.observer)

	return &Vaultsweep{
		config: cfg,
		runner: app.NewRunner(sweeper, o.logger),
	}, nil
}

// Config returns the effective configuration.
func (v *Vaultsweep) Config() Config {
	return v.config
}

// Run executes the named tool. recordID names the record for
// ToolDeleteFile and is ignored by the bulk tools.
//
// The report is returned even when err is non-nil and covers every record
// attempted before the run ended.
func (v *Vaultsweep) Run(ctx context.Context, tool, recordID string) (Report, error) {
	t, err := app.LookupTool(tool)
	if err != nil {
		return Report{}, err
	}
	p := app.Params{VaultID: v.config.VaultID, DryRun: v.config.DryRun}
	if !t.Bulk {
		p.RecordID = domain.RecordID(recordID)
	}
	return v.runner.Run(ctx, t, p)
}

// Tools returns the names accepted by Run in sorted order.
func Tools() []string {
	return app.ToolNames()
}

// IsBulk reports whether tool walks a whole collection rather than a single
// record.
func IsBulk(tool string) (bool, error) {
	t, err := app.LookupTool(tool)
	if err != nil {
		return false, err
	}
	return t.Bulk, nil
}
