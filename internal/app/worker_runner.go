package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-dispatch/internal/logx"
	"service-dispatch/internal/service/sweeper"
	"service-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the expiry sweeper and the delivery status consumer
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun blocks until the worker stops and panics on unexpected errors
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

type workerIn struct {
	dig.In

	Ctx         context.Context
	Pool        *pgxpool.Pool
	Logger      logx.Logger
	Sweeper     *sweeper.Sweeper
	Consumer    *kafka.Consumer
	Admin       *http.Server `name:"admin_server" optional:"true"`
	CloseFanout fanoutCloser
}

func workerRun(in workerIn) error {
	if in.Sweeper == nil {
		return fmt.Errorf("sweeper is nil: worker container misconfigured")
	}
	defer closeWorker(in)

	if in.Admin != nil {
		startServer(in.Admin, in.Logger, "admin listening")
		defer gracefulShutdown(in.Admin, in.Logger, time.Second)
	}

	if err := in.Sweeper.Start(in.Ctx); err != nil {
		return fmt.Errorf("start sweeper: %w", err)
	}
	defer in.Sweeper.Stop()

	in.Logger.Info("service-dispatch-worker started")
	if in.Consumer == nil {
		in.Logger.Warn("kafka not configured, delivery status intake disabled")
		<-in.Ctx.Done()
		return in.Ctx.Err()
	}
	return in.Consumer.Run(in.Ctx)
}

func closeWorker(in workerIn) {
	if in.Consumer != nil {
		if err := in.Consumer.Close(); err != nil {
			in.Logger.Error("kafka close error", logx.Err(err))
		}
	}
	closeResources(in.Pool, in.CloseFanout, in.Logger)
}
