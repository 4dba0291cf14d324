package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Client tracking defaults.
const (
	DefaultClientIdle = 5 * time.Minute
	DefaultMaxClients = 10000
)

// ClientLimiter provides per-client rate limiting using token buckets.
// Each client address gets its own limiter. Clients idle for longer than
// the idle timeout are forgotten, and at most maxClients are tracked; when
// full, the least recently seen client is dropped.
type ClientLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientEntry
	rps     float64
	burst   int
	idle    time.Duration
	max     int
	now     func() time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimiterOption configures a ClientLimiter.
type LimiterOption func(*ClientLimiter)

// WithClientIdle sets how long an idle client's bucket is kept.
func WithClientIdle(d time.Duration) LimiterOption {
	return func(l *ClientLimiter) {
		if d > 0 {
			l.idle = d
		}
	}
}

// WithMaxClients caps the number of tracked clients.
func WithMaxClients(n int) LimiterOption {
	return func(l *ClientLimiter) {
		if n > 0 {
			l.max = n
		}
	}
}

// WithClock sets the time source. Defaults to time.Now.
func WithClock(now func() time.Time) LimiterOption {
	return func(l *ClientLimiter) {
		l.now = now
	}
}

// NewClientLimiter creates a ClientLimiter allowing rps requests per second
// per client with the given burst.
func NewClientLimiter(rps float64, burst int, opts ...LimiterOption) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	l := &ClientLimiter{
		clients: make(map[string]*clientEntry),
		rps:     rps,
		burst:   burst,
		idle:    DefaultClientIdle,
		max:     DefaultMaxClients,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether a request from client may proceed now.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= l.max {
			l.prune(now)
		}
		if len(l.clients) >= l.max {
			l.evictOldest()
		}
		e = &clientEntry{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[client] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Prune forgets clients idle for longer than the idle timeout.
func (l *ClientLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(l.now())
}

func (l *ClientLimiter) prune(now time.Time) {
	for client, e := range l.clients {
		if now.Sub(e.lastSeen) > l.idle {
			delete(l.clients, client)
		}
	}
}

func (l *ClientLimiter) evictOldest() {
	var (
		oldest string
		seen   time.Time
		found  bool
	)
	for client, e := range l.clients {
		if !found || e.lastSeen.Before(seen) {
			oldest, seen, found = client, e.lastSeen, true
		}
	}
	if found {
		delete(l.clients, oldest)
	}
}
