// Package catalog wraps the product catalog used to price new broadcasts.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Catalog resolves authoritative unit prices.
type Catalog interface {
	ResolvePrices(ctx context.Context, ids []string) (map[string]domain.Money, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes how RetryingCatalog backs off.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingCatalog retries lookups that failed because the catalog store was unreachable.
// A missing product is an answer, not a failure, and is returned at once.
type RetryingCatalog struct {
	next    Catalog
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(context.Context, time.Duration) bool
}

// NewRetryingCatalog returns nil when next is nil.
func NewRetryingCatalog(next Catalog, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingCatalog {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingCatalog{next: next, logger: logger, retries: retries, cfg: cfg, sleep: sleepWithContext}
}

// ResolvePrices calls the wrapped catalog up to MaxAttempts times.
func (c *RetryingCatalog) ResolvePrices(ctx context.Context, ids []string) (map[string]domain.Money, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		prices, err := c.next.ResolvePrices(ctx, ids)
		if err == nil {
			return prices, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == c.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(c.cfg.BaseDelay, c.cfg.MaxDelay, attempt)
		if c.retries != nil {
			c.retries.Inc()
		}
		c.logger.Warn("catalog retry",
			logx.String("products", strings.Join(ids, ",")),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !c.sleep(ctx, delay) {
			break
		}
	}
	return nil, lastErr
}

func isRetryable(err error) bool {
	return errors.Is(err, apperr.ErrStoreUnavailable)
}

// backoff doubles base per attempt, capped at max.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
