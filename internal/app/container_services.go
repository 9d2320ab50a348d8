package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/fanout"
	"service-dispatch/internal/gateway/catalog"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/service/assign"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/status"
)

type catalogIn struct {
	dig.In

	Repo    *repository.CatalogRepo
	Logger  logx.Logger
	Retries prometheus.Counter `name:"catalog_retries_total"`
	Config  *config.Config
}

func newCatalog(in catalogIn) *catalog.RetryingCatalog {
	return catalog.NewRetryingCatalog(in.Repo, in.Logger, in.Retries, catalog.RetryConfig{
		MaxAttempts: in.Config.Catalog.MaxAttempts,
		BaseDelay:   in.Config.Catalog.BaseDelay,
		MaxDelay:    in.Config.Catalog.MaxDelay,
	})
}

func newGeoRepo(pool *pgxpool.Pool, cfg *config.Config) *repository.RetailerGeoRepo {
	return repository.NewRetailerGeoRepo(pool, cfg.Dispatch.RadiusKM*1000)
}

func newAssigner(
	agents *repository.AgentRepo,
	broadcasts *repository.BroadcastRepo,
	fan fanout.Fanout,
	m *metrics.Dispatch,
	cfg *config.Config,
	logger logx.Logger,
) *assign.Assigner {
	return assign.NewAssigner(agents, broadcasts, fan, m, cfg.Dispatch.OperationTimeout, logger)
}

func newStatusMachine(
	broadcasts *repository.BroadcastRepo,
	assigner *assign.Assigner,
	fan fanout.Fanout,
	m *metrics.Dispatch,
	cfg *config.Config,
	logger logx.Logger,
) *status.Machine {
	return status.NewMachine(broadcasts, assigner, fan, m, cfg.Dispatch.OperationTimeout, logger)
}

func newDispatchService(
	broadcasts *repository.BroadcastRepo,
	cat *catalog.RetryingCatalog,
	geo *repository.RetailerGeoRepo,
	assigner *assign.Assigner,
	fan fanout.Fanout,
	m *metrics.Dispatch,
	cfg *config.Config,
	logger logx.Logger,
) *dispatch.Service {
	return dispatch.NewService(broadcasts, cat, geo, assigner, fan, m, dispatch.Options{
		ClaimWindow: cfg.Dispatch.ClaimWindow,
		Pricing: domain.Pricing{
			TaxRate:     cfg.Dispatch.TaxRate,
			DeliveryFee: domain.Money(cfg.Dispatch.DeliveryFeeCents),
		},
		OperationTimeout: cfg.Dispatch.OperationTimeout,
	}, logger)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewBroadcastRepo,
		repository.NewAgentRepo,
		repository.NewCatalogRepo,
		newGeoRepo,
		newCatalog,
		provideFanout,
		newAssigner,
		newStatusMachine,
		newDispatchService,
	)
}
