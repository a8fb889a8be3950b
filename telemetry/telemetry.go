// Package telemetry exposes process metrics for scoring runs.
//
// A Recorder owns its own Prometheus registry so several runs (or tests)
// never collide on the default registerer. Every method is safe on a nil
// *Recorder, which lets library code report unconditionally while callers
// that do not care simply pass nothing.
//
// Batch runs export the registry in the node_exporter textfile format with
// WriteTextfile; the HTTP server mounts Handler on /metrics.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vlneval"

// Scoring outcomes used as the "outcome" label.
const (
	OutcomeScored  = "scored"
	OutcomeFailed  = "failed"
	OutcomeIgnored = "ignored"
)

// Recorder collects scorer metrics.
type Recorder struct {
	reg *prometheus.Registry

	scenes       prometheus.Counter
	tableBuild   prometheus.Histogram
	instructions *prometheus.CounterVec
	runs         *prometheus.CounterVec
	runDuration  prometheus.Histogram
	successRate  prometheus.Gauge
	spl          prometheus.Gauge
}

// New creates a Recorder with a private registry that also carries the Go
// runtime and process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		reg: reg,
		scenes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenes_loaded_total",
			Help:      "Scene connectivity graphs loaded.",
		}),
		tableBuild: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "distance_table_build_seconds",
			Help:      "Time to build one scene's all-pairs distance table.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions_total",
			Help:      "Submitted instructions by scoring outcome.",
		}, []string{"outcome"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Scoring runs by result.",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one scoring run.",
			Buckets:   prometheus.DefBuckets,
		}),
		successRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_rate",
			Help:      "Success rate of the last completed run.",
		}),
		spl: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_spl",
			Help:      "Mean SPL of the last completed run.",
		}),
	}
	reg.MustRegister(
		r.scenes, r.tableBuild, r.instructions, r.runs, r.runDuration, r.successRate, r.spl,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// SceneLoaded counts one loaded scene graph.
func (r *Recorder) SceneLoaded() {
	if r == nil {
		return
	}
	r.scenes.Inc()
}

// ObserveTableBuild records the build time of one distance table.
func (r *Recorder) ObserveTableBuild(d time.Duration) {
	if r == nil {
		return
	}
	r.tableBuild.Observe(d.Seconds())
}

// Instruction counts one submitted instruction with the given outcome.
func (r *Recorder) Instruction(outcome string) {
	if r == nil {
		return
	}
	r.instructions.WithLabelValues(outcome).Inc()
}

// RunFinished records a completed or failed run. successRate and spl are
// only published when err is nil.
func (r *Recorder) RunFinished(d time.Duration, successRate, spl float64, err error) {
	if r == nil {
		return
	}
	r.runDuration.Observe(d.Seconds())
	if err != nil {
		r.runs.WithLabelValues("error").Inc()
		return
	}
	r.runs.WithLabelValues("ok").Inc()
	r.successRate.Set(successRate)
	r.spl.Set(spl)
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current metrics to path in the textfile
// collector format. The write is atomic (temp file + rename).
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}
