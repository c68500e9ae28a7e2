// Package main GreenControl API
//
// @title           GreenControl API
// @version         1.0
// @description     API для управления фермерским хозяйством: участки, культуры, посадки, задачи, финансы и уведомления.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/greencontrol/internal/app/greencontrol"
	"github.com/magabrotheeeer/greencontrol/internal/config"
	"github.com/magabrotheeeer/greencontrol/internal/lib/logger"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env)

	log.Info("starting greencontrol", slog.String("env", cfg.Env))
	log.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := greencontrol.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("greencontrol stopped gracefully")
}
