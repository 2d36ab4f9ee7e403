// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// CounterStore is the backing counter for a fixed-window limiter. The
// in-memory implementation below serves single-process deployments; a
// shared store (atomic increment + expiry) can be dropped in for
// horizontal scaling without touching the window/threshold policy.
type CounterStore interface {
	// Incr bumps the counter for key in its current window and returns the
	// new count plus the moment the window resets.
	Incr(key string, window time.Duration) (count int, reset time.Time)
}

type entry struct {
	count int
	reset time.Time
}

// MemoryStore is a process-local CounterStore. Counters are not shared
// across processes and do not survive a restart; that is a documented
// limitation of this backend, not something it tries to hide.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry

	now func() time.Time // injectable for tests
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Incr implements CounterStore. Expired entries across the whole map are
// swept opportunistically here; there is no background timer.
func (s *MemoryStore) Incr(key string, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.reset) {
			delete(s.entries, k)
		}
	}

	e, ok := s.entries[key]
	if !ok {
		e = &entry{reset: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.reset
}

// Len reports the number of live keys. Used by tests.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Limiter applies one tier's policy: a fixed window, a ceiling, and the
// message returned when the ceiling is hit.
type Limiter struct {
	store   CounterStore
	max     int
	window  time.Duration
	message string
}

// New creates a limiter over the given store.
func New(store CounterStore, max int, window time.Duration, message string) *Limiter {
	if message == "" {
		message = "Too many requests, please try again later."
	}
	return &Limiter{store: store, max: max, window: window, message: message}
}

// Check counts one request for key and reports whether it is allowed,
// along with the remaining budget and window reset time.
func (l *Limiter) Check(key string) (allowed bool, remaining int, reset time.Time) {
	count, reset := l.store.Incr(key, l.window)
	remaining = l.max - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.max, remaining, reset
}

// ClientIP extracts the client address from a request, preferring proxy
// headers, falling back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
