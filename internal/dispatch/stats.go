package dispatch

import "sync"

// Counter names reported by the status endpoint.
const (
	CounterDeliveries   = "deliveries"
	CounterMessages     = "messages"
	CounterDuplicates   = "duplicates"
	CounterTextRelayed  = "text_relayed"
	CounterMediaStored  = "media_stored"
	CounterMediaFailed  = "media_failed"
	CounterDocsQueued   = "documents_queued"
	CounterRelayFailed  = "relay_failed"
	CounterRepliesSent  = "replies_sent"
	CounterUnsupported  = "unsupported"
	CounterSendFailures = "send_failures"
)

// Stats is a set of monotonically increasing pipeline counters.
type Stats struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewStats creates an empty counter set.
func NewStats() *Stats {
	return &Stats{counters: make(map[string]int64)}
}

// Inc adds one to the named counter.
func (s *Stats) Inc(name string) {
	s.mu.Lock()
	s.counters[name]++
	s.mu.Unlock()
}

// Snapshot returns a copy of all counters.
func (s *Stats) Snapshot() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}
