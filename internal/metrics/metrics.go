package metrics

import "time"

// Counter and latency names recorded by the frame server.
const (
	IdentityCacheHit   = "identity_cache_hit"
	IdentityCacheMiss  = "identity_cache_miss"
	UpstreamRetry      = "upstream_retry"
	UpstreamCall       = "upstream_call"
	SessionCreated     = "session_created"
	SessionCreateError = "session_create_error"
	PollOutcome        = "poll"
)

// Recorder receives counters and latencies from upstream clients and payment flows
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// NoopRecorder discards everything
type NoopRecorder struct{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}
