// Package redispub publishes fan-out events on Redis pub/sub channels.
package redispub

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"service-dispatch/internal/fanout"
)

// Publisher issues one PUBLISH per event on prefix+channel.
type Publisher struct {
	rdb    redis.UniversalClient
	prefix string
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewClient opens a Redis client for o.
func NewClient(o Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	})
}

// New wraps an existing client.
func New(rdb redis.UniversalClient, prefix string) *Publisher {
	return &Publisher{rdb: rdb, prefix: prefix}
}

// Push publishes the encoded event. Having no subscribers is not an error.
func (p *Publisher) Push(ctx context.Context, channel string, ev fanout.Event) error {
	payload, err := ev.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}
	if err := p.rdb.Publish(ctx, p.prefix+channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.prefix+channel, err)
	}
	return nil
}

// Close closes the underlying client.
func (p *Publisher) Close() error { return p.rdb.Close() }

var _ fanout.Fanout = (*Publisher)(nil)
