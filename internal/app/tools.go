package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/bft-labs/vaultsweep/internal/domain"
	"github.com/bft-labs/vaultsweep/internal/ports"
)

// Tool binds a command to a resource and the verb applied to it. Resources
// are not interchangeable: batches cannot be hard-deleted and are detached
// from every project instead, ELN entries are discarded through a status
// change, and samples and files are removed.
type Tool struct {
	Name     string
	Short    string
	Resource domain.Resource
	Verb     domain.Verb

	// Bulk tools enumerate the whole collection. Non-bulk tools act on the
	// single record named on the command line.
	Bulk bool
}

// Tool names.
const (
	ToolDeleteFile    = "delete-file"
	ToolDeleteBatches = "delete-batches"
	ToolDeleteSamples = "delete-samples"
	ToolDiscardELNs   = "discard-elns"
)

// Tools is the dispatch table keyed by tool name.
var Tools = map[string]Tool{
	ToolDeleteFile: {
		Name:     ToolDeleteFile,
		Short:    "Delete one file from a vault",
		Resource: domain.ResourceFiles,
		Verb:     domain.VerbRemove,
	},
	ToolDeleteBatches: {
		Name:     ToolDeleteBatches,
		Short:    "Detach every batch in a vault from all projects",
		Resource: domain.ResourceBatches,
		Verb:     domain.VerbDetach,
		Bulk:     true,
	},
	ToolDeleteSamples: {
		Name:     ToolDeleteSamples,
		Short:    "Delete every inventory sample in a vault",
		Resource: domain.ResourceSamples,
		Verb:     domain.VerbRemove,
		Bulk:     true,
	},
	ToolDiscardELNs: {
		Name:     ToolDiscardELNs,
		Short:    "Discard every ELN entry in a vault",
		Resource: domain.ResourceELNEntries,
		Verb:     domain.VerbTransition,
		Bulk:     true,
	},
}

// LookupTool returns the named tool.
func LookupTool(name string) (Tool, error) {
	t, ok := Tools[name]
	if !ok {
		return Tool{}, fmt.Errorf("%w: %q", domain.ErrUnknownTool, name)
	}
	return t, nil
}

// ToolNames returns every tool name in sorted order.
func ToolNames() []string {
	names := make([]string, 0, len(Tools))
	for name := range Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params are the identifiers supplied for one run.
type Params struct {
	VaultID int64

	// RecordID is required by non-bulk tools.
	RecordID domain.RecordID

	DryRun bool
}

// Runner executes tools and brackets each run with start and completion lines.
type Runner struct {
	sweeper *Sweeper
	logger  ports.Logger
}

// NewRunner creates a runner.
func NewRunner(sweeper *Sweeper, logger ports.Logger) *Runner {
	return &Runner{sweeper: sweeper, logger: logger}
}

// Run executes tool against the vault in p.
func (r *Runner) Run(ctx context.Context, tool Tool, p Params) (Report, error) {
	if !tool.Verb.Valid() {
		return Report{}, fmt.Errorf("%w: tool %q has verb %q", domain.ErrInvalidConfig, tool.Name, tool.Verb)
	}
	if !tool.Bulk && p.RecordID == "" {
		return Report{}, fmt.Errorf("%w: %s requires a record id", domain.ErrInvalidConfig, tool.Name)
	}

	r.logger.Info("program started",
		ports.String("tool", tool.Name),
		ports.Int64("vault_id", p.VaultID),
		ports.Bool("dry_run", p.DryRun),
	)

	job := Job{
		Resource: tool.Resource,
		VaultID:  p.VaultID,
		Verb:     tool.Verb,
		DryRun:   p.DryRun,
	}

	var (
		rep Report
		err error
	)
	if tool.Bulk {
		rep, err = r.sweeper.Sweep(ctx, job)
	} else {
		rep, err = r.sweeper.ApplyOne(ctx, job, p.RecordID)
	}
	if err != nil {
		r.logger.Warn("program completed with errors", append(rep.Fields(), ports.Err(err))...)
		return rep, err
	}

	r.logger.Info("program completed", ports.String("tool", tool.Name))
	return rep, nil
}
