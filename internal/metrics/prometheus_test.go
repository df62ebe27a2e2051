package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.IncCounter(IdentityCacheHit, map[string]string{"source": "neynar"})
	rec.IncCounter(IdentityCacheHit, map[string]string{"source": "neynar"})
	rec.IncCounter(PollOutcome, map[string]string{"source": "glide", "outcome": "settled"})
	rec.ObserveLatency(UpstreamCall, 20*time.Millisecond, map[string]string{"source": "glide"})

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	var observations uint64
	for _, f := range families {
		switch f.GetName() {
		case "paywithglide_events_total":
			for _, m := range f.GetMetric() {
				var typ string
				for _, l := range m.GetLabel() {
					if l.GetName() == "type" {
						typ = l.GetValue()
					}
				}
				counts[typ] += m.GetCounter().GetValue()
			}
		case "paywithglide_latency_seconds":
			for _, m := range f.GetMetric() {
				observations += m.GetHistogram().GetSampleCount()
			}
		}
	}

	assert.Equal(t, 2.0, counts[IdentityCacheHit])
	assert.Equal(t, 1.0, counts[PollOutcome])
	assert.Equal(t, uint64(1), observations)
}
