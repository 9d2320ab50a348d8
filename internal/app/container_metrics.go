package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/http/admin"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	CatalogRetriesTotal    prometheus.Counter `name:"catalog_retries_total"`
	Dispatch               *metrics.Dispatch
}

type adminOut struct {
	dig.Out

	Server *http.Server `name:"admin_server"`
}

// provideAdminServer yields a nil server when ADMIN_ADDR is unset.
func provideAdminServer(cfg *config.Config, logger logx.Logger) adminOut {
	return adminOut{Server: admin.NewServer(admin.Config{
		Addr: cfg.Admin.Addr,
		User: cfg.Admin.User,
		Pass: cfg.Admin.Pass,
	}, logger)}
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics, provideAdminServer)
}

// provideMetrics registers with the default registerer. A collector that is
// already registered (a second container in the same process) is reused.
func provideMetrics() (metricsOut, error) {
	var out metricsOut
	var err error

	if out.RateLimitExceededTotal, err = register("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.CatalogRetriesTotal, err = register("catalog_retries_total", metrics.NewCatalogRetriesTotal()); err != nil {
		return metricsOut{}, err
	}

	d := metrics.NewDispatch()
	if d.Created, err = register("dispatch_broadcasts_created_total", d.Created); err != nil {
		return metricsOut{}, err
	}
	if d.Claims, err = register("dispatch_claims_total", d.Claims); err != nil {
		return metricsOut{}, err
	}
	if d.Expired, err = register("dispatch_broadcasts_expired_total", d.Expired); err != nil {
		return metricsOut{}, err
	}
	if d.FanoutFailures, err = register("dispatch_fanout_failures_total", d.FanoutFailures); err != nil {
		return metricsOut{}, err
	}
	if d.AgentReservations, err = register("dispatch_agent_reservations_total", d.AgentReservations); err != nil {
		return metricsOut{}, err
	}
	if d.Transitions, err = register("dispatch_status_transitions_total", d.Transitions); err != nil {
		return metricsOut{}, err
	}
	out.Dispatch = d
	return out, nil
}

func register[C prometheus.Collector](name string, c C) (C, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
