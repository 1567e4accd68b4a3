// Package metrics counts sweep progress with Prometheus collectors.
//
// A sweep is a one-shot process, so nothing is served over HTTP. Instead the
// registry can be written once at exit in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/vaultsweep/internal/app"
	"github.com/bft-labs/vaultsweep/internal/domain"
)

const namespace = "vaultsweep"

// Recorder implements app.Observer.
type Recorder struct {
	registry *prometheus.Registry

	records   *prometheus.GaugeVec
	pages     *prometheus.CounterVec
	mutations *prometheus.CounterVec
	duration  *prometheus.GaugeVec
	lastRun   *prometheus.GaugeVec

	now func() time.Time
}

var _ app.Observer = (*Recorder)(nil)

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "collection_records",
			Help:      "Records counted in the collection before the sweep started.",
		}, []string{"resource"}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "List pages fetched.",
		}, []string{"resource"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Attempted record mutations by result.",
		}, []string{"resource", "verb", "status"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last sweep.",
		}, []string{"resource", "verb"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last sweep finished, labelled by whether it was clean.",
		}, []string{"resource", "clean"}),
		now: time.Now,
	}
	r.registry.MustRegister(r.records, r.pages, r.mutations, r.duration, r.lastRun)
	return r
}

// Registry returns the registry holding the sweep collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// OnCount records the collection size.
func (r *Recorder) OnCount(resource domain.Resource, total int) {
	r.records.WithLabelValues(resource.Path).Set(float64(total))
}

// OnPage counts a fetched page.
func (r *Recorder) OnPage(resource domain.Resource, _ domain.Page) {
	r.pages.WithLabelValues(resource.Path).Inc()
}

// OnOutcome counts one mutation attempt.
func (r *Recorder) OnOutcome(resource domain.Resource, verb domain.Verb, outcome domain.Outcome) {
	status := "success"
	if !outcome.Succeeded() {
		status = "failure"
	}
	r.mutations.WithLabelValues(resource.Path, string(verb), status).Inc()
}

// OnComplete records the run duration and finish time.
func (r *Recorder) OnComplete(report app.Report) {
	r.duration.WithLabelValues(report.Resource.Path, string(report.Verb)).Set(report.Duration.Seconds())
	clean := "false"
	if report.Clean() {
		clean = "true"
	}
	r.lastRun.WithLabelValues(report.Resource.Path, clean).Set(float64(r.now().Unix()))
}

// WriteTextfile writes the registry to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
