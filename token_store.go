package confirm

import (
	"sync"
	"time"
)

const (
	// DefaultTokenTTL is how long a pending confirmation stays redeemable.
	DefaultTokenTTL = 5 * time.Minute
	// DefaultTokenCapacity bounds how many confirmations may be pending at
	// once. The cap keeps memory bounded under a flood of requests from
	// callers that are, by definition, not authenticated yet.
	DefaultTokenCapacity = 1000
)

// PendingConfirmation is the record bound to an issued token.
type PendingConfirmation struct {
	Token     string
	Email     string
	Request   Request
	ExpiresAt time.Time
}

// TokenStoreOption customizes token store behavior.
type TokenStoreOption func(*TokenStore)

// WithStoreTTL overrides the per-entry time to live.
func WithStoreTTL(ttl time.Duration) TokenStoreOption {
	return func(s *TokenStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithStoreCapacity overrides the maximum number of pending entries.
func WithStoreCapacity(capacity int) TokenStoreOption {
	return func(s *TokenStore) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithStoreClock injects a custom clock (useful for tests).
func WithStoreClock(clock func() time.Time) TokenStoreOption {
	return func(s *TokenStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithStoreLogger overrides the logger used for eviction notices.
func WithStoreLogger(logger Logger) TokenStoreOption {
	return func(s *TokenStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStoreSweepInterval starts a background sweep that reclaims expired
// entries nobody ever redeems. Expiry is enforced on access either way; the
// sweep only bounds memory. Call Stop to end it.
func WithStoreSweepInterval(interval time.Duration) TokenStoreOption {
	return func(s *TokenStore) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// TokenStore is a bounded, time-expiring concurrent map from opaque token to
// pending confirmation record. Expiry is checked on every access, so a
// token past its TTL is unreachable even if the sweep never ran. At
// capacity the entry closest to expiry is evicted to make room.
type TokenStore struct {
	mu            sync.Mutex
	entries       map[string]PendingConfirmation
	ttl           time.Duration
	capacity      int
	now           func() time.Time
	logger        Logger
	sweepInterval time.Duration
	done          chan struct{}
	stopOnce      sync.Once
}

// NewTokenStore creates a token store with the default TTL and capacity.
func NewTokenStore(opts ...TokenStoreOption) *TokenStore {
	s := &TokenStore{
		entries:  make(map[string]PendingConfirmation),
		ttl:      DefaultTokenTTL,
		capacity: DefaultTokenCapacity,
		now:      time.Now,
		logger:   defLogger{},
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.sweepInterval > 0 {
		go s.sweep()
	}

	return s
}

// TTL returns the per-entry time to live.
func (s *TokenStore) TTL() time.Duration {
	return s.ttl
}

// Put inserts a pending confirmation under token. A record without an
// expiry gets one from the store TTL; re-inserting a record after a
// declined redemption keeps its original expiry. If the store is full the
// entry closest to expiry is evicted first.
func (s *TokenStore) Put(token string, rec PendingConfirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ExpiresAt.IsZero() {
		rec.ExpiresAt = s.now().Add(s.ttl)
	}

	if _, exists := s.entries[token]; !exists && len(s.entries) >= s.capacity {
		s.evictNearestLocked()
	}

	s.entries[token] = rec
}

// Get returns the record for token. Unknown tokens and tokens past their
// TTL are both reported as absent; callers cannot tell the cases apart.
func (s *TokenStore) Get(token string) (PendingConfirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.liveLocked(token)
	return rec, ok
}

// Take atomically removes and returns the record for token. Under
// concurrent redemption attempts on the same link exactly one caller wins
// the record; the rest observe it as absent.
func (s *TokenStore) Take(token string) (PendingConfirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.liveLocked(token)
	if ok {
		delete(s.entries, token)
	}
	return rec, ok
}

// Remove deletes the record for token. Removing an absent token is a no-op.
func (s *TokenStore) Remove(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
}

// Len returns the number of stored entries, expired ones included until the
// next access or sweep touches them.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop ends the background sweep, if one was configured.
func (s *TokenStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

func (s *TokenStore) liveLocked(token string) (PendingConfirmation, bool) {
	rec, ok := s.entries[token]
	if !ok {
		return PendingConfirmation{}, false
	}
	if !rec.ExpiresAt.After(s.now()) {
		delete(s.entries, token)
		return PendingConfirmation{}, false
	}
	return rec, true
}

// evictNearestLocked drops the entry closest to expiry. With a fixed TTL
// that is the oldest insert, so already-expired entries go first.
func (s *TokenStore) evictNearestLocked() {
	var victim string
	var nearest time.Time

	for token, rec := range s.entries {
		if victim == "" || rec.ExpiresAt.Before(nearest) {
			victim = token
			nearest = rec.ExpiresAt
		}
	}

	if victim != "" {
		delete(s.entries, victim)
		s.logger.Debug("token store at capacity, evicted entry expiring at %s", nearest)
	}
}

func (s *TokenStore) sweep() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for token, rec := range s.entries {
				if !rec.ExpiresAt.After(now) {
					delete(s.entries, token)
				}
			}
			s.mu.Unlock()
		}
	}
}
