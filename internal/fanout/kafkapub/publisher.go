// Package kafkapub appends fan-out events to a Kafka topic keyed by channel.
package kafkapub

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"

	"service-dispatch/internal/fanout"
)

// Publisher writes each event as one message; the channel is the key so events
// for the same recipient keep their order within a partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer builds a SyncProducer suitable for Publisher.
func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return p, nil
}

// New wraps producer.
func New(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

// Push sends the encoded event.
func (p *Publisher) Push(_ context.Context, channel string, ev fanout.Event) error {
	payload, err := ev.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(channel),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event"), Value: []byte(ev.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka send %s: %w", p.topic, err)
	}
	return nil
}

// Close closes the producer.
func (p *Publisher) Close() error { return p.producer.Close() }

var _ fanout.Fanout = (*Publisher)(nil)
