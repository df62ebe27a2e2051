package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder with a counter and a histogram vector
type PrometheusRecorder struct {
	counters  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the frame server collectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paywithglide",
			Name:      "events_total",
			Help:      "frame server event counters",
		},
		[]string{"type", "source", "outcome"},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paywithglide",
			Name:      "latency_seconds",
			Help:      "upstream operation latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "source"},
	)

	reg.MustRegister(counters, histogram)

	return &PrometheusRecorder{
		counters:  counters,
		histogram: histogram,
	}
}

// IncCounter increments the events_total series for name
func (p *PrometheusRecorder) IncCounter(name string, labels map[string]string) {
	p.counters.With(prometheus.Labels{
		"type":    name,
		"source":  labels["source"],
		"outcome": labels["outcome"],
	}).Inc()
}

// ObserveLatency records d in the latency_seconds histogram
func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration, labels map[string]string) {
	p.histogram.With(prometheus.Labels{
		"operation": name,
		"source":    labels["source"],
	}).Observe(d.Seconds())
}
