package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// AccountPurger exposes the subset of application functionality required by the cleaner.
type AccountPurger interface {
	PurgeAnonymousAccounts(ctx context.Context, olderThan time.Time) (int64, error)
}

// AnonymousCleaner periodically deletes stale anonymous identities that
// never completed a purchase, so abandoned checkout sessions do not
// accumulate forever.
type AnonymousCleaner struct {
	facade   AccountPurger
	interval time.Duration
	maxAge   time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAnonymousCleaner constructs the cleanup worker.
func NewAnonymousCleaner(facade AccountPurger, interval, maxAge time.Duration, logger *slog.Logger) *AnonymousCleaner {
	if interval <= 0 {
		interval = time.Hour
	}
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &AnonymousCleaner{
		facade:   facade,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger,
	}
}

// Start launches background cleanup.
func (c *AnonymousCleaner) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.loop(runCtx)
}

// Stop waits for the cleanup loop to finish.
func (c *AnonymousCleaner) Stop() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *AnonymousCleaner) loop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.purge(ctx)
		}
	}
}

func (c *AnonymousCleaner) purge(ctx context.Context) {
	cutoff := time.Now().Add(-c.maxAge)
	removed, err := c.facade.PurgeAnonymousAccounts(ctx, cutoff)
	if err != nil {
		c.logger.Error("anonymous account cleanup failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		c.logger.Info("purged stale anonymous accounts", slog.Int64("removed", removed))
	}
}
