package app

import (
	"os"

	"service-dispatch/internal/config"
	"service-dispatch/internal/logx"
)

func newLogger(cfg *config.Config) logx.Logger {
	return logx.New(logx.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: os.Stdout,
	})
}
