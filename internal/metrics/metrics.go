// Package metrics counts what a generation run did and writes the result in
// the Prometheus text format, for node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/TechXTT/cimgen/internal/model"
)

const namespace = "cimgen"

// Run holds the metrics of one generation run on a private registry.
type Run struct {
	registry *prometheus.Registry

	schemaFiles  prometheus.Counter
	classes      *prometheus.GaugeVec
	issues       *prometheus.CounterVec
	filesWritten *prometheus.CounterVec
	duration     prometheus.Gauge
	lastSuccess  prometheus.Gauge
}

// NewRun creates and registers the run metrics.
func NewRun() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),

		schemaFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_files_total",
			Help:      "Schema files parsed",
		}),
		classes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "classes",
			Help:      "Resolved classes by kind",
		}, []string{"kind"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issues_total",
			Help:      "Non-fatal schema issues by kind",
		}, []string{"kind"}),
		filesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Output files written by language",
		}, []string{"lang"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
	}
	r.registry.MustRegister(r.schemaFiles, r.classes, r.issues, r.filesWritten, r.duration, r.lastSuccess)
	return r
}

// IssueReported implements model.IssueRecorder.
func (r *Run) IssueReported(kind model.IssueKind) {
	r.issues.WithLabelValues(kind.String()).Inc()
}

func (r *Run) SchemaFiles(n int) {
	r.schemaFiles.Add(float64(n))
}

// ObserveModel records the class count per kind.
func (r *Run) ObserveModel(m *model.Model) {
	counts := map[model.ClassKind]int{}
	for _, c := range m.Classes.Classes() {
		counts[c.Kind]++
	}
	for _, k := range []model.ClassKind{model.KindClass, model.KindPrimitive, model.KindDatatype, model.KindEnum} {
		r.classes.WithLabelValues(k.String()).Set(float64(counts[k]))
	}
}

func (r *Run) FileWritten(lang string) {
	r.filesWritten.WithLabelValues(lang).Inc()
}

// Finish stamps the duration since start and the success time.
func (r *Run) Finish(start time.Time) {
	now := time.Now()
	r.duration.Set(now.Sub(start).Seconds())
	r.lastSuccess.Set(float64(now.Unix()))
}

func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the metrics atomically to path.
func (r *Run) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
