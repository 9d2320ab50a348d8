package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/config"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/fanout"
	"service-dispatch/internal/metrics"
	testlog "service-dispatch/internal/testutil"
)

func TestProvideFanout_NoTransportDropsEvents(t *testing.T) {
	rec := testlog.New()
	cfg := testConfig()

	out, err := provideFanout(cfg, rec.Logger(), metrics.NewDispatch())
	require.NoError(t, err)
	require.True(t, rec.Has("warn", "no fan-out transport configured, notifications are dropped"))

	ev := fanout.NewEvent(fanout.EventBroadcastCreated, domain.Broadcast{ID: uuid.New()}, time.Now())
	require.NoError(t, out.Fanout.Push(context.Background(), fanout.RetailerChannel("r1"), ev))
	require.NoError(t, out.Closer())

	require.ErrorIs(t, out.Fanout.Push(context.Background(), fanout.RetailerChannel("r1"), ev), fanout.ErrClosed)
}

func TestProvideFanout_KafkaProducerError(t *testing.T) {
	orig := newKafkaProducer
	newKafkaProducer = func([]string) (sarama.SyncProducer, error) {
		return nil, errors.New("no brokers")
	}
	t.Cleanup(func() { newKafkaProducer = orig })

	cfg := testConfig()
	cfg.Kafka = config.Kafka{Brokers: []string{"127.0.0.1:1"}, EventsTopic: "dispatch.events"}

	_, err := provideFanout(cfg, testlog.New().Logger(), metrics.NewDispatch())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no brokers")
}

func TestProvideFanout_RedisConfigured(t *testing.T) {
	rec := testlog.New()
	cfg := testConfig()
	cfg.Redis = config.Redis{Addr: "127.0.0.1:1", ChannelPrefix: "dispatch:"}

	out, err := provideFanout(cfg, rec.Logger(), metrics.NewDispatch())
	require.NoError(t, err)
	require.False(t, rec.Has("warn", "no fan-out transport configured, notifications are dropped"))
	require.NoError(t, out.Closer())
}
