package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/greencontrol/internal/app/scheduler"
	"github.com/magabrotheeeer/greencontrol/internal/config"
	"github.com/magabrotheeeer/greencontrol/internal/lib/logger"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env)
	log.Info("starting reminder scheduler", slog.String("env", cfg.Env), slog.Duration("interval", cfg.Reminder.Interval))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := scheduler.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize scheduler", sl.Err(err))
		os.Exit(1)
	}
	if err := app.Run(ctx); err != nil {
		log.Error("scheduler stopped with error", sl.Err(err))
		os.Exit(1)
	}
}
