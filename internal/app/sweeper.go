package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/vaultsweep/internal/domain"
	"github.com/bft-labs/vaultsweep/internal/ports"
)

// MutateFunc applies the job's mutation to one record.
type MutateFunc func(ctx context.Context, id domain.RecordID) (domain.MutationResult, error)

// Job describes one sweep over a resource collection.
type Job struct {
	Resource domain.Resource
	VaultID  int64
	Verb     domain.Verb

	// Mutate overrides the per-item call. When nil, the sweeper calls
	// VaultAPI.Mutate with Verb.
	Mutate MutateFunc

	// DryRun enumerates and logs every record without mutating it.
	DryRun bool
}

// SweeperConfig contains configuration for the sweeper.
type SweeperConfig struct {
	// PageSize is the largest page requested per list call.
	PageSize int
}

// Sweeper visits every record of a collection exactly once and applies a
// mutation to each. It runs one request at a time.
type Sweeper struct {
	api      ports.VaultAPI
	logger   ports.Logger
	observer Observer
	pageSize int
}

// NewSweeper creates a sweeper. observer may be nil.
func NewSweeper(cfg SweeperConfig, api ports.VaultAPI, logger ports.Logger, observer Observer) *Sweeper {
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.DefaultPageSize
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &Sweeper{
		api:      api,
		logger:   logger,
		observer: observer,
		pageSize: cfg.PageSize,
	}
}

// Sweep counts the collection once, walks the planned pages in order and
// mutates every id it receives, in the order received.
//
// A rejected or failed mutation is logged and the walk continues. A count or
// page fetch failure ends the sweep; the returned report covers the items
// attempted before it. When every page was walked but some items failed, the
// error wraps domain.ErrPartialFailure.
func (s *Sweeper) Sweep(ctx context.Context, job Job) (Report, error) {
	start := time.Now()
	rep := newReport(job)
	finish := func() {
		rep.Duration = time.Since(start)
		s.observer.OnComplete(rep)
	}

	total, err := s.api.Count(ctx, job.Resource, job.VaultID)
	if err != nil {
		s.logger.Warn("count failed", ports.String("resource", job.Resource.Path), ports.Err(err))
		finish()
		return rep, fmt.Errorf("count %s: %w", job.Resource.Path, err)
	}

	plan := PlanPages(total, s.pageSize)
	rep.Total = total
	rep.PagesPlanned = len(plan)
	s.observer.OnCount(job.Resource, total)
	s.logger.Info(fmt.Sprintf("%d %s records found", total, job.Resource.Name),
		ports.String("resource", job.Resource.Path),
		ports.Int("total", total),
		ports.Int("pages", len(plan)),
	)

	for _, pr := range plan {
		ids, err := s.api.ListPage(ctx, job.Resource, job.VaultID, pr.Offset, pr.Size)
		if err != nil {
			rep.FailedOffset = pr.Offset
			s.logger.Warn("page fetch failed",
				ports.String("resource", job.Resource.Path),
				ports.Int("offset", pr.Offset),
				ports.Int("page_size", pr.Size),
				ports.Int("attempted", rep.Attempted),
				ports.Err(err),
			)
			finish()
			return rep, &domain.PageFetchError{Offset: pr.Offset, Size: pr.Size, Err: err}
		}

		page := domain.Page{Items: ids, Offset: pr.Offset, RequestedSize: pr.Size}
		rep.PagesFetched++
		s.observer.OnPage(job.Resource, page)
		if page.Len() < pr.Size {
			s.logger.Info("short page",
				ports.Int("offset", pr.Offset),
				ports.Int("requested", pr.Size),
				ports.Int("received", page.Len()),
			)
		}

		for _, id := range page.Items {
			if err := ctx.Err(); err != nil {
				s.logger.Warn("sweep canceled", append(rep.Fields(), ports.Err(err))...)
				finish()
				return rep, err
			}
			rep.record(s.apply(ctx, job, id))
		}
	}

	finish()
	if rep.Failed > 0 {
		s.logger.Warn("sweep completed with failures", rep.Fields()...)
		return rep, fmt.Errorf("%w: %d of %d %s mutations rejected",
			domain.ErrPartialFailure, rep.Failed, rep.Attempted, job.Resource.Name)
	}
	s.logger.Info("sweep completed", rep.Fields()...)
	return rep, nil
}

// ApplyOne mutates a single known record without enumerating the collection.
// A rejection is returned as a *domain.MutationFailure.
func (s *Sweeper) ApplyOne(ctx context.Context, job Job, id domain.RecordID) (Report, error) {
	start := time.Now()
	rep := newReport(job)
	rep.Total = 1

	out := s.apply(ctx, job, id)
	rep.record(out)
	rep.Duration = time.Since(start)
	s.observer.OnComplete(rep)

	if out.Succeeded() {
		return rep, nil
	}
	if out.HTTPStatus != 0 {
		res := domain.MutationResult{Status: out.HTTPStatus, Body: out.Detail}
		if f := res.Failure(); f != nil {
			return rep, f
		}
	}
	return rep, fmt.Errorf("%s %s: %s", job.Resource.Name, id, out.Detail)
}

// apply performs and logs one mutation. It never aborts the walk.
func (s *Sweeper) apply(ctx context.Context, job Job, id domain.RecordID) domain.Outcome {
	action, past := verbWords(job.Verb)
	out := domain.Outcome{RecordID: id}

	if job.DryRun {
		out.Status = domain.StatusSuccess
		out.Detail = "dry run"
		s.logger.Info(fmt.Sprintf("would %s %s", action, job.Resource.Name), ports.String("id", id.String()))
		s.observer.OnOutcome(job.Resource, job.Verb, out)
		return out
	}

	mutate := job.Mutate
	if mutate == nil {
		mutate = func(ctx context.Context, id domain.RecordID) (domain.MutationResult, error) {
			return s.api.Mutate(ctx, job.Resource, job.VaultID, id, job.Verb)
		}
	}

	res, err := mutate(ctx, id)
	switch {
	case err != nil:
		out.Status = domain.StatusFailure
		out.Detail = err.Error()
		s.logger.Warn(fmt.Sprintf("failed to %s %s", action, job.Resource.Name),
			ports.String("id", id.String()),
			ports.Err(err),
		)
	case !res.OK():
		out.Status = domain.StatusFailure
		out.HTTPStatus = res.Status
		out.Detail = res.Body
		s.logger.Warn(fmt.Sprintf("failed to %s %s", action, job.Resource.Name),
			ports.String("id", id.String()),
			ports.Int("status", res.Status),
			ports.String("response", res.Body),
		)
	default:
		out.Status = domain.StatusSuccess
		out.HTTPStatus = res.Status
		s.logger.Info(fmt.Sprintf("%s %s", job.Resource.Name, past), ports.String("id", id.String()))
	}

	s.observer.OnOutcome(job.Resource, job.Verb, out)
	return out
}

func verbWords(v domain.Verb) (action, past string) {
	switch v {
	case domain.VerbRemove:
		return "delete", "deleted"
	case domain.VerbDetach:
		return "detach", "detached"
	case domain.VerbTransition:
		return "discard", "discarded"
	default:
		return string(v), string(v) + "d"
	}
}
