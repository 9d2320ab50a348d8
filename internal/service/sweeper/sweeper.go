// Package sweeper expires pending broadcasts whose claim window has closed.
//
// The sweep is cleanup only: a claim re-checks the expiry time itself, so a
// missed or delayed sweep never lets a late claim through. Several replicas
// may sweep at once because each sweep only flips rows still pending.
package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/fanout"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
)

// Expirer flips overdue pending broadcasts to expired and returns them.
type Expirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) ([]domain.Broadcast, error)
}

// Sweeper runs ExpireOverdue once at start and then every interval.
type Sweeper struct {
	store    Expirer
	fanout   fanout.Fanout
	metrics  *metrics.Dispatch
	interval time.Duration
	timeout  time.Duration
	logger   logx.Logger
	now      func() time.Time

	mu     sync.Mutex
	c      *cron.Cron
	cancel context.CancelFunc
}

// New creates a new Sweeper.
func New(store Expirer, fan fanout.Fanout, m *metrics.Dispatch, interval, timeout time.Duration, logger logx.Logger) *Sweeper {
	if interval < time.Second {
		interval = time.Minute
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if fan == nil {
		fan = fanout.Nop{}
	}
	if m == nil {
		m = metrics.NewDispatch()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Sweeper{
		store:    store,
		fanout:   fan,
		metrics:  m,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Sweep expires everything overdue at the current time and returns how many
// broadcasts it transitioned.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := s.now()
	expired, err := s.store.ExpireOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		s.logger.Debug("sweep done", logx.Int("expired", 0))
		return 0, nil
	}

	s.metrics.Expired.Add(float64(len(expired)))
	s.metrics.Transitions.WithLabelValues(string(domain.StatusExpired)).Add(float64(len(expired)))
	s.logger.Info("sweep done", logx.Int("expired", len(expired)))

	for _, b := range expired {
		ch := fanout.CustomerChannel(b.CustomerID)
		if err := s.fanout.Push(ctx, ch, fanout.NewEvent(fanout.EventStatusChanged, b, now)); err != nil {
			s.logger.Warn("notify failed",
				logx.String("channel", ch),
				logx.String("broadcast_id", b.ID.String()),
				logx.Err(err),
			)
		}
	}
	return len(expired), nil
}

// Start performs an eager sweep to catch broadcasts that expired while the
// process was down, then schedules the periodic one. A failing sweep is
// logged and retried on the next tick.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.run(ctx)

	s.c = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s.c.Schedule(cron.Every(s.interval), cron.FuncJob(func() { s.run(ctx) }))
	s.c.Start()
	s.logger.Info("sweeper started", logx.Duration("interval", s.interval))
	return nil
}

// Stop cancels a running sweep and waits for it to return.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		return
	}
	s.cancel()
	<-s.c.Stop().Done()
	s.c = nil
	s.logger.Info("sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.Sweep(ctx); err != nil {
		s.logger.Error("sweep failed", logx.Err(err))
	}
}
