// Package metrics exposes Prometheus instrumentation for the alert pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder collects alert pipeline metrics.
type Recorder struct {
	cyclesTotal    prometheus.Counter
	symbolsScanned prometheus.Counter
	alertsFired    *prometheus.CounterVec
	sendFailures   *prometheus.CounterVec
	cycleDuration  prometheus.Histogram
}

// New creates a Prometheus metrics recorder registered on the default registry.
func New() *Recorder {
	return &Recorder{
		cyclesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stocksentry_scan_cycles_total",
			Help: "Total number of completed alert scan cycles",
		}),
		symbolsScanned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stocksentry_symbols_scanned_total",
			Help: "Total number of symbol evaluations across all cycles",
		}),
		alertsFired: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stocksentry_alerts_fired_total",
			Help: "Total number of alerts fanned out",
		}, []string{"symbol"}),
		sendFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stocksentry_channel_send_failures_total",
			Help: "Total number of failed channel sends",
		}, []string{"channel"}),
		cycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stocksentry_scan_cycle_duration_seconds",
			Help:    "Duration of alert scan cycles in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordCycle records one completed scan cycle and its duration in seconds.
func (r *Recorder) RecordCycle(seconds float64) {
	r.cyclesTotal.Inc()
	r.cycleDuration.Observe(seconds)
}

// RecordSymbolScanned records one symbol evaluation.
func (r *Recorder) RecordSymbolScanned() {
	r.symbolsScanned.Inc()
}

// RecordAlertFired records one fan-out for a symbol.
func (r *Recorder) RecordAlertFired(symbol string) {
	r.alertsFired.WithLabelValues(symbol).Inc()
}

// RecordSendFailure records one failed channel send.
func (r *Recorder) RecordSendFailure(channel string) {
	r.sendFailures.WithLabelValues(channel).Inc()
}
