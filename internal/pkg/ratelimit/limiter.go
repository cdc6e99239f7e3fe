package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	domainErrors "github.com/omarsel/flashmart/internal/domain/errors"
)

// CheckoutLimiter enforces a minimum interval between successful checkout
// submissions per identity. The previous revision tracked a single
// client-local timestamp; keying on the authenticated user ID makes the
// limit server-authoritative.
type CheckoutLimiter struct {
	interval        time.Duration
	cleanupInterval time.Duration

	mu      sync.Mutex
	entries map[int64]*entry

	stopOnce sync.Once
	stopCh   chan struct{}
}

type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewCheckoutLimiter creates a limiter allowing one checkout per interval
// per identity and starts background cleanup of idle entries.
func NewCheckoutLimiter(interval, cleanupInterval time.Duration) *CheckoutLimiter {
	if interval <= 0 {
		interval = time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	l := &CheckoutLimiter{
		interval:        interval,
		cleanupInterval: cleanupInterval,
		entries:         make(map[int64]*entry),
		stopCh:          make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Acquire reserves the checkout slot for the user. On success it returns a
// release function that gives the slot back; callers invoke it when the
// order write fails, so a failed submission does not burn the interval.
// When the interval has not elapsed it returns RateLimitError with the
// remaining wait.
func (l *CheckoutLimiter) Acquire(userID int64) (func(), error) {
	lim := l.limiterFor(userID)

	r := lim.Reserve()
	if !r.OK() {
		return nil, domainErrors.RateLimitError{RetryAfter: l.interval}
	}
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		return nil, domainErrors.RateLimitError{RetryAfter: delay}
	}
	return func() { r.CancelAt(time.Now()) }, nil
}

// Stop terminates the cleanup goroutine.
func (l *CheckoutLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Len reports the number of tracked identities, for tests and metrics.
func (l *CheckoutLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *CheckoutLimiter) limiterFor(userID int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[userID]; ok {
		e.lastAccess = time.Now()
		return e.limiter
	}

	lim := rate.NewLimiter(rate.Every(l.interval), 1)
	l.entries[userID] = &entry{limiter: lim, lastAccess: time.Now()}
	return lim
}

func (l *CheckoutLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *CheckoutLimiter) cleanup() {
	ttl := l.cleanupInterval * 2
	if ttl < l.interval*2 {
		ttl = l.interval * 2
	}
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for id, e := range l.entries {
		if now.Sub(e.lastAccess) > ttl {
			delete(l.entries, id)
		}
	}
}
