package dedup

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const sweepInterval = 1 * time.Minute

// Key derives the dedup key for one logical invocation from the activity
// object and definition-instance identifiers. Returns "" when both are blank,
// which callers treat as "no dedup possible".
func Key(activityObjectID, definitionInstanceID string) string {
	a := strings.TrimSpace(activityObjectID)
	d := strings.TrimSpace(definitionInstanceID)
	if a == "" && d == "" {
		return ""
	}
	return a + ":" + d
}

// Guard is an at-most-once-per-process admission filter. It does not survive
// restarts and does not coordinate across instances. With ttl == 0 keys are
// retained for the process lifetime; a positive ttl turns on eviction for
// long-running deployments.
type Guard struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewGuard(ttl time.Duration) *Guard {
	return &Guard{
		seen:   make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
}

// ShouldProcess reports whether this is the first sighting of key and marks it
// seen. Check and set happen under one lock so two concurrent callers with the
// same key cannot both observe a first sighting.
func (g *Guard) ShouldProcess(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if at, ok := g.seen[key]; ok {
		if g.ttl == 0 || now.Sub(at) < g.ttl {
			return false
		}
		// Expired entry: treat as unseen again.
	}
	g.seen[key] = now
	return true
}

// Len returns the number of retained keys.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.seen)
}

// Start launches the periodic eviction loop. It is a no-op when the guard has
// no TTL.
func (g *Guard) Start(ctx context.Context) {
	if g.ttl == 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-g.stopCh:
				return
			case <-ticker.C:
				g.sweep()
			}
		}
	}()
}

// Stop terminates the eviction loop.
func (g *Guard) Stop() {
	g.stopOnce.Do(func() { close(g.stopCh) })
}

func (g *Guard) sweep() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	evicted := 0
	for key, at := range g.seen {
		if now.Sub(at) >= g.ttl {
			delete(g.seen, key)
			evicted++
		}
	}
	if evicted > 0 {
		logrus.Debugf("[DEDUP] evicted %d expired keys, %d retained", evicted, len(g.seen))
	}
}
