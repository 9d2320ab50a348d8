package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-dispatch/internal/logx"
)

// Runner runs the HTTP API
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}

	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		panic(err)
	}
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

type appIn struct {
	dig.In

	Ctx         context.Context
	Server      *http.Server
	Admin       *http.Server `name:"admin_server" optional:"true"`
	Pool        *pgxpool.Pool
	Logger      logx.Logger
	CloseFanout fanoutCloser
}

func appRun(in appIn) error {
	startServer(in.Server, in.Logger, "service-dispatch listening")
	if in.Admin != nil {
		startServer(in.Admin, in.Logger, "admin listening")
	}
	<-in.Ctx.Done()
	in.Logger.Info("shutting down service-dispatch")

	gracefulShutdown(in.Server, in.Logger, 15*time.Second)
	if in.Admin != nil {
		gracefulShutdown(in.Admin, in.Logger, time.Second)
	}
	closeResources(in.Pool, in.CloseFanout, in.Logger)
	return in.Ctx.Err()
}

func startServer(server *http.Server, logger logx.Logger, msg string) {
	go func() {
		logger.Info(msg, logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen error", logx.String("addr", server.Addr), logx.Err(err))
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, closeFanout fanoutCloser, logger logx.Logger) {
	if closeFanout != nil {
		if err := closeFanout(); err != nil {
			logger.Error("fanout close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
