package confirm

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type issueBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IssueLimiter is a per-address token-bucket limiter guarding confirmation
// mail issuance, with automatic stale-entry cleanup. It complements the
// store capacity bound: the store caps total pending records, the limiter
// caps how fast a single address can mint them.
type IssueLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*issueBucket
	r        rate.Limit
	burst    int
	done     chan struct{}
	stopOnce sync.Once
}

// NewIssueLimiter creates a per-address limiter: r requests/second, burst
// up to burst requests.
func NewIssueLimiter(r rate.Limit, burst int) *IssueLimiter {
	l := &IssueLimiter{
		buckets: make(map[string]*issueBucket),
		r:       r,
		burst:   burst,
		done:    make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Allow reports whether address may be sent another confirmation mail now.
func (l *IssueLimiter) Allow(address string) bool {
	return l.get(address).Allow()
}

// Stop ends the cleanup goroutine.
func (l *IssueLimiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

func (l *IssueLimiter) get(address string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[address]; ok {
		b.lastSeen = time.Now()
		return b.limiter
	}
	limiter := rate.NewLimiter(l.r, l.burst)
	l.buckets[address] = &issueBucket{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

// cleanup removes buckets idle for more than 10 minutes.
func (l *IssueLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			for address, b := range l.buckets {
				if time.Since(b.lastSeen) > 10*time.Minute {
					delete(l.buckets, address)
				}
			}
			l.mu.Unlock()
		}
	}
}
