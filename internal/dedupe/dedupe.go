// Package dedupe suppresses redelivered webhook messages. The platform
// retries deliveries it did not see acknowledged in time, so the same message
// can arrive more than once within a short window.
package dedupe

import (
	"fmt"
	"sync"
	"time"
)

// Deduplicator remembers recently seen message keys for a fixed TTL. Entries
// are swept lazily on each Seen call, so memory stays bounded by arrival rate
// without a background goroutine.
type Deduplicator struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
	now  func() time.Time
}

// New creates a Deduplicator with the given TTL. A zero or negative ttl
// defaults to one hour.
func New(ttl time.Duration) *Deduplicator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Deduplicator{
		ttl:  ttl,
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Key builds the identity of a message for dedupe purposes. The message id
// alone is not enough: some redeliveries reuse ids across unrelated payloads,
// so sender, timestamp and type are folded in.
func Key(messageID, sender, timestamp, msgType string) string {
	return fmt.Sprintf("%s|%s|%s|%s", messageID, sender, timestamp, msgType)
}

// Seen records the key and reports whether it was already present and not
// yet expired.
func (d *Deduplicator) Seen(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.sweep(now)

	if at, ok := d.seen[key]; ok && now.Sub(at) < d.ttl {
		return true
	}
	d.seen[key] = now
	return false
}

// Size reports the number of tracked keys, expired entries included until
// the next sweep.
func (d *Deduplicator) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

func (d *Deduplicator) sweep(now time.Time) {
	for k, at := range d.seen {
		if now.Sub(at) >= d.ttl {
			delete(d.seen, k)
		}
	}
}
