// Package metrics exports Prometheus counters and latency histograms for
// handled utterances.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shahar-caura/deskhand/internal/assistant"
)

const namespace = "deskhand"

// Recorder implements assistant.Observer by updating Prometheus metrics.
type Recorder struct {
	utterances *prometheus.CounterVec
	commands   *prometheus.CounterVec
	failures   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewRecorder registers the deskhand metrics with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		utterances: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "utterances_total",
			Help:      "Handled utterances by routing intent and outcome status.",
		}, []string{"intent", "status"}),
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Dispatched system commands by command id and outcome status.",
		}, []string{"command", "status"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failed outcomes by error class.",
		}, []string{"reason"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handle_duration_seconds",
			Help:      "Time spent handling one utterance.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 15, 60},
		}, []string{"intent"}),
	}
}

func (r *Recorder) Observe(ev assistant.Event) error {
	kind := ev.Intent.String()
	status := string(ev.Outcome.Status)

	r.utterances.WithLabelValues(kind, status).Inc()
	r.latency.WithLabelValues(kind).Observe(ev.Duration.Seconds())
	if ev.Command != "" {
		r.commands.WithLabelValues(string(ev.Command), status).Inc()
	}
	if !ev.Outcome.OK() {
		r.failures.WithLabelValues(Reason(ev.Outcome.Err)).Inc()
	}
	return nil
}

// Reason maps an outcome error onto a low-cardinality label.
func Reason(err error) string {
	switch {
	case err == nil:
		return "unknown"
	case errors.Is(err, assistant.ErrValidation):
		return "validation"
	case errors.Is(err, assistant.ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, assistant.ErrBackend):
		return "backend"
	case errors.Is(err, assistant.ErrLanguage):
		return "language"
	default:
		return "other"
	}
}
