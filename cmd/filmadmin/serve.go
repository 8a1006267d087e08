package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mantonx/filmadmin/internal/config"
	"github.com/mantonx/filmadmin/internal/logger"
	"github.com/mantonx/filmadmin/internal/server"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Migrate the schema and serve the HTTP API",
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, db, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer closeDB(db)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.AddWatcher(func(oldConfig, newConfig *config.Config) {
		if oldConfig.Logging.Level != newConfig.Logging.Level {
			logger.SetLevel(newConfig.Logging.Level)
			logger.Info("log level changed", "level", newConfig.Logging.Level)
		}
	})
	if config.GetConfigManager().Path() != "" {
		go func() {
			if err := config.GetConfigManager().Watch(ctx); err != nil {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	srv, err := server.New(cfg, db, modules())
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
