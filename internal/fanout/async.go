package fanout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"service-dispatch/internal/logx"
)

// ErrQueueFull is returned when an event is dropped because the queue is full.
var ErrQueueFull = errors.New("fanout queue full")

// ErrClosed is returned by Push after Close.
var ErrClosed = errors.New("fanout closed")

type task struct {
	channel string
	ev      Event
}

// Async decouples callers from the transport with a bounded queue and a fixed
// worker pool. Push never blocks; failures are logged and counted.
type Async struct {
	next     Fanout
	tasks    chan task
	timeout  time.Duration
	logger   logx.Logger
	failures prometheus.Counter

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsync starts workers goroutines delivering through next.
func NewAsync(next Fanout, workers, queueSize int, logger logx.Logger, failures prometheus.Counter) *Async {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	a := &Async{
		next:     next,
		tasks:    make(chan task, queueSize),
		timeout:  5 * time.Second,
		logger:   logger,
		failures: failures,
	}
	for i := 0; i < workers; i++ {
		a.wg.Add(1)
		go a.worker()
	}
	return a
}

// Push enqueues ev. The caller's context is not propagated; delivery outlives the request.
func (a *Async) Push(_ context.Context, channel string, ev Event) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.tasks <- task{channel: channel, ev: ev}:
		return nil
	default:
		a.fail(channel, ev, ErrQueueFull)
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.tasks)
	a.mu.Unlock()

	a.wg.Wait()
	return nil
}

func (a *Async) worker() {
	defer a.wg.Done()
	for t := range a.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		if err := a.next.Push(ctx, t.channel, t.ev); err != nil {
			a.fail(t.channel, t.ev, err)
		}
		cancel()
	}
}

func (a *Async) fail(channel string, ev Event, err error) {
	if a.failures != nil {
		a.failures.Inc()
	}
	a.logger.Warn("fanout push failed",
		logx.String("event", string(ev.Type)),
		logx.String("channel", channel),
		logx.String("broadcast_id", ev.Broadcast.ID),
		logx.Err(err),
	)
}
