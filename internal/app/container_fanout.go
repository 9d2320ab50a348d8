package app

import (
	"errors"
	"io"

	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/fanout"
	"service-dispatch/internal/fanout/kafkapub"
	"service-dispatch/internal/fanout/redispub"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
)

// fanoutCloser drains the notification queue and closes the transports.
type fanoutCloser func() error

type fanoutOut struct {
	dig.Out

	Fanout fanout.Fanout
	Closer fanoutCloser
}

var newKafkaProducer = kafkapub.NewProducer

// provideFanout publishes to every configured transport through one async pool.
// With neither Redis nor Kafka configured, events are dropped.
func provideFanout(cfg *config.Config, logger logx.Logger, m *metrics.Dispatch) (fanoutOut, error) {
	var (
		sinks   fanout.Multi
		closers []io.Closer
	)

	if cfg.Redis.Enabled() {
		pub := redispub.New(redispub.NewClient(redispub.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}), cfg.Redis.ChannelPrefix)
		sinks = append(sinks, pub)
		closers = append(closers, pub)
	}
	if cfg.Kafka.Enabled() && cfg.Kafka.EventsTopic != "" {
		producer, err := newKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			closeAll(closers)
			return fanoutOut{}, err
		}
		pub := kafkapub.New(producer, cfg.Kafka.EventsTopic)
		sinks = append(sinks, pub)
		closers = append(closers, pub)
	}

	var next fanout.Fanout = sinks
	if len(sinks) == 0 {
		logger.Warn("no fan-out transport configured, notifications are dropped")
		next = fanout.Nop{}
	}

	async := fanout.NewAsync(next, cfg.Fanout.Workers, cfg.Fanout.QueueSize, logger, m.FanoutFailures)
	return fanoutOut{
		Fanout: async,
		Closer: func() error {
			err := async.Close()
			return errors.Join(err, closeAll(closers))
		},
	}, nil
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
