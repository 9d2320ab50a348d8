package app

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/config"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
)

func TestProvideMetrics_Success_RegistersAndReturnsCounters(t *testing.T) {
	withIsolatedRegistry(t)

	out, err := provideMetrics()
	require.NoError(t, err)
	require.NotNil(t, out.RateLimitExceededTotal)
	require.NotNil(t, out.CatalogRetriesTotal)
	require.NotNil(t, out.Dispatch)
	require.NotNil(t, out.Dispatch.Claims)
}

func TestProvideMetrics_AlreadyRegistered_ReturnsExistingCounters(t *testing.T) {
	withIsolatedRegistry(t)

	existingRL := metrics.NewRateLimitExceededTotal()
	existingCR := metrics.NewCatalogRetriesTotal()
	require.NoError(t, prometheus.DefaultRegisterer.Register(existingRL))
	require.NoError(t, prometheus.DefaultRegisterer.Register(existingCR))

	out, err := provideMetrics()
	require.NoError(t, err)
	require.Same(t, existingRL, out.RateLimitExceededTotal)
	require.Same(t, existingCR, out.CatalogRetriesTotal)

	again, err := provideMetrics()
	require.NoError(t, err)
	require.Same(t, out.Dispatch.Claims, again.Dispatch.Claims)
}

type errRegisterer struct{ err error }

func (e errRegisterer) Register(prometheus.Collector) error  { return e.err }
func (e errRegisterer) MustRegister(...prometheus.Collector) {}
func (e errRegisterer) Unregister(prometheus.Collector) bool { return false }

func TestProvideMetrics_RegisterError_NotAlreadyRegistered(t *testing.T) {
	oldReg := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = errRegisterer{err: errors.New("boom")}
	t.Cleanup(func() { prometheus.DefaultRegisterer = oldReg })

	_, err := provideMetrics()
	require.Error(t, err)
	require.Contains(t, err.Error(), "register rate_limit_exceeded_total")
}

func TestProvideAdminServer(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	require.Nil(t, provideAdminServer(cfg, logx.Nop()).Server)

	cfg.Admin = config.Admin{Addr: "127.0.0.1:6060"}
	out := provideAdminServer(cfg, logx.Nop())
	require.NotNil(t, out.Server)
	require.Equal(t, "127.0.0.1:6060", out.Server.Addr)
}
