package vaultsweep

import (
	"github.com/bft-labs/vaultsweep/internal/app"
	"github.com/bft-labs/vaultsweep/internal/domain"
	"github.com/bft-labs/vaultsweep/internal/ports"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// Types seen by an Observer.
type (
	// Observer watches a run as it progresses.
	Observer = app.Observer

	// Report summarizes one run.
	Report = app.Report

	// Resource describes a record family inside a vault.
	Resource = domain.Resource

	// Verb names the mutation applied to each record.
	Verb = domain.Verb

	// Page is one list response.
	Page = domain.Page

	// Outcome is the result of one attempted mutation.
	Outcome = domain.Outcome
)

// Option configures optional behavior of Vaultsweep.
type Option func(*options)

type options struct {
	httpClient ports.HTTPClient
	logger     ports.Logger
	observer   app.Observer
}

// WithHTTPClient sets a custom HTTP client for API communication.
// If not provided, a default client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver sets an observer notified of counts, pages, outcomes and
// completion. Calls are made synchronously from the run.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}
