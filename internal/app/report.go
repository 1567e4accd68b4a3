package app

import (
	"time"

	"github.com/bft-labs/vaultsweep/internal/domain"
	"github.com/bft-labs/vaultsweep/internal/ports"
)

// Report summarizes one sweep.
type Report struct {
	Resource domain.Resource
	Verb     domain.Verb
	VaultID  int64
	DryRun   bool

	// Total is the count read once before enumeration started.
	Total int

	// PagesPlanned and PagesFetched differ only when a page fetch failed
	// or the run was canceled.
	PagesPlanned int
	PagesFetched int

	Attempted int
	Succeeded int
	Failed    int

	// FailedOffset is the offset of the page that could not be fetched,
	// or -1 when every planned page was listed.
	FailedOffset int

	Duration time.Duration
}

func newReport(job Job) Report {
	return Report{
		Resource:     job.Resource,
		Verb:         job.Verb,
		VaultID:      job.VaultID,
		DryRun:       job.DryRun,
		FailedOffset: -1,
	}
}

func (r *Report) record(o domain.Outcome) {
	r.Attempted++
	if o.Succeeded() {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// Clean reports whether every planned page was fetched and every attempted
// mutation succeeded.
func (r Report) Clean() bool {
	return r.Failed == 0 && r.FailedOffset < 0 && r.PagesFetched == r.PagesPlanned
}

// Fields returns the report as log fields.
func (r Report) Fields() []ports.Field {
	fields := []ports.Field{
		ports.String("resource", r.Resource.Path),
		ports.String("verb", string(r.Verb)),
		ports.Int64("vault_id", r.VaultID),
		ports.Int("total", r.Total),
		ports.Int("pages", r.PagesFetched),
		ports.Int("attempted", r.Attempted),
		ports.Int("succeeded", r.Succeeded),
		ports.Int("failed", r.Failed),
		ports.Duration("duration", r.Duration),
	}
	if r.FailedOffset >= 0 {
		fields = append(fields, ports.Int("failed_offset", r.FailedOffset))
	}
	if r.DryRun {
		fields = append(fields, ports.Bool("dry_run", true))
	}
	return fields
}
