package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	testlog "service-dispatch/internal/testutil"
)

type fakeCatalog struct {
	fn func(context.Context, []string) (map[string]domain.Money, error)
}

func (f *fakeCatalog) ResolvePrices(ctx context.Context, ids []string) (map[string]domain.Money, error) {
	return f.fn(ctx, ids)
}

type counterStub struct{ n int64 }

func (c *counterStub) Inc()         { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 { return atomic.LoadInt64(&c.n) }

var unavailable = fmt.Errorf("resolve prices: %w: dial tcp", apperr.ErrStoreUnavailable)

func TestRetryingCatalog_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var calls int32
	next := &fakeCatalog{fn: func(context.Context, []string) (map[string]domain.Money, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, unavailable
		}
		return map[string]domain.Money{"p1": 500}, nil
	}}
	ctr := &counterStub{}
	c := NewRetryingCatalog(next, rec.Logger(), ctr, RetryConfig{MaxAttempts: 5})
	require.NotNil(t, c)

	got, err := c.ResolvePrices(context.Background(), []string{"p1"})
	require.NoError(t, err)
	require.Equal(t, domain.Money(500), got["p1"])
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
	require.Equal(t, int64(2), ctr.Count())
	require.True(t, rec.Has("warn", "catalog retry"))
}

func TestRetryingCatalog_NoRetryOnProductUnavailable(t *testing.T) {
	t.Parallel()

	var calls int32
	next := &fakeCatalog{fn: func(context.Context, []string) (map[string]domain.Money, error) {
		atomic.AddInt32(&calls, 1)
		return nil, &apperr.ProductUnavailableError{IDs: []string{"x"}}
	}}
	c := NewRetryingCatalog(next, testlog.New().Logger(), nil, RetryConfig{MaxAttempts: 5})

	_, err := c.ResolvePrices(context.Background(), []string{"x"})
	require.ErrorIs(t, err, apperr.ErrProductUnavailable)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetryingCatalog_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	var calls int32
	next := &fakeCatalog{fn: func(context.Context, []string) (map[string]domain.Money, error) {
		atomic.AddInt32(&calls, 1)
		return nil, unavailable
	}}
	c := NewRetryingCatalog(next, testlog.New().Logger(), nil, RetryConfig{MaxAttempts: 3})

	_, err := c.ResolvePrices(context.Background(), []string{"p1"})
	require.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetryingCatalog_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	next := &fakeCatalog{fn: func(context.Context, []string) (map[string]domain.Money, error) {
		atomic.AddInt32(&calls, 1)
		cancel()
		return nil, unavailable
	}}
	c := NewRetryingCatalog(next, testlog.New().Logger(), nil, RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour})

	_, err := c.ResolvePrices(ctx, []string{"p1"})
	require.Error(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	require.Equal(t, 100*time.Millisecond, backoff(100*time.Millisecond, time.Second, 1))
	require.Equal(t, 400*time.Millisecond, backoff(100*time.Millisecond, time.Second, 3))
	require.Equal(t, time.Second, backoff(100*time.Millisecond, time.Second, 6))
}

func TestNewRetryingCatalog_NilNext(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewRetryingCatalog(nil, testlog.New().Logger(), nil, RetryConfig{}))
}
