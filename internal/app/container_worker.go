package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/config"
	"service-dispatch/internal/fanout"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/service/events"
	"service-dispatch/internal/service/status"
	"service-dispatch/internal/service/sweeper"
	"service-dispatch/internal/transport/kafka"
)

func newSweeper(
	broadcasts *repository.BroadcastRepo,
	fan fanout.Fanout,
	m *metrics.Dispatch,
	cfg *config.Config,
	logger logx.Logger,
) *sweeper.Sweeper {
	return sweeper.New(broadcasts, fan, m, cfg.Sweeper.Interval, 0, logger)
}

func newProcessor(machine *status.Machine, logger logx.Logger) *events.Processor {
	return events.NewProcessor(machine, logger)
}

var newConsumer = kafka.NewConsumer

// provideConsumer returns nil when Kafka is not configured.
func provideConsumer(cfg *config.Config, logger logx.Logger, p *events.Processor) (*kafka.Consumer, error) {
	return newConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.DeliveryTopic, makeDeliveryKafka(p))
}

// makeDeliveryKafka marks events the status machine will never accept as
// permanent so the consumer skips them instead of retrying forever.
func makeDeliveryKafka(p *events.Processor) kafka.HandleFunc {
	return func(ctx context.Context, ev events.DeliveryEvent) error {
		err := p.Handle(ctx, ev)
		if errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newSweeper,
		newProcessor,
		provideConsumer,
	)
}
