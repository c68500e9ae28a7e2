// Package greencontrol собирает HTTP API GreenControl: хранилище, кэш,
// доменные сервисы, обработчики и gRPC health-сервер.
package greencontrol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/greencontrol/internal/cache"
	"github.com/magabrotheeeer/greencontrol/internal/config"
	grpchealth "github.com/magabrotheeeer/greencontrol/internal/grpc/health"
	authhandler "github.com/magabrotheeeer/greencontrol/internal/http/handlers/auth"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/contabilidad"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/cultivo"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/finanzas"
	healthhandler "github.com/magabrotheeeer/greencontrol/internal/http/handlers/health"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/n8n"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/notificacion"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/parcela"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/siembra"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/tarea"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/usuario"
	"github.com/magabrotheeeer/greencontrol/internal/http/middlewarectx"
	"github.com/magabrotheeeer/greencontrol/internal/lib/jwt"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/migrations"
	"github.com/magabrotheeeer/greencontrol/internal/models"
	authservice "github.com/magabrotheeeer/greencontrol/internal/services/auth"
	cropservice "github.com/magabrotheeeer/greencontrol/internal/services/crop"
	financeservice "github.com/magabrotheeeer/greencontrol/internal/services/finance"
	notificationservice "github.com/magabrotheeeer/greencontrol/internal/services/notification"
	parcelservice "github.com/magabrotheeeer/greencontrol/internal/services/parcel"
	plantingservice "github.com/magabrotheeeer/greencontrol/internal/services/planting"
	"github.com/magabrotheeeer/greencontrol/internal/services/reminder"
	"github.com/magabrotheeeer/greencontrol/internal/services/report"
	taskservice "github.com/magabrotheeeer/greencontrol/internal/services/task"
	userservice "github.com/magabrotheeeer/greencontrol/internal/services/user"
	"github.com/magabrotheeeer/greencontrol/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App HTTP API вместе с gRPC health-сервером.
type App struct {
	server     *http.Server
	health     *grpchealth.Server
	healthAddr string
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
}

// New подключается к PostgreSQL и Redis, применяет миграции и собирает роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// суммы и площади уходят клиенту числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewService(logger, db, jwtMaker)
	financeService := financeservice.NewService(logger, db, cacheRedis)

	health := grpchealth.NewServer(logger, cfg.CheckInterval, map[string]grpchealth.Checker{
		"postgres": db,
		"redis":    cacheRedis,
	})

	handlers := Handlers{
		Auth:         authhandler.New(logger, authService),
		Parcela:      parcela.New(logger, parcelservice.NewService(logger, db, cacheRedis)),
		Cultivo:      cultivo.New(logger, cropservice.NewService(logger, db)),
		Siembra:      siembra.New(logger, plantingservice.NewService(logger, db)),
		Tarea:        tarea.New(logger, taskservice.NewService(logger, db)),
		Gasto:        finanzas.New(logger, financeService, models.KindExpense),
		Ingreso:      finanzas.New(logger, financeService, models.KindIncome),
		Usuario:      usuario.New(logger, userservice.NewService(logger, db)),
		Notificacion: notificacion.New(logger, notificationservice.NewService(logger, db)),
		Contabilidad: contabilidad.New(logger, report.NewService(logger, db, cacheRedis, cfg.SummaryTTL)),
		N8N:          n8n.New(logger, reminder.NewService(logger, db)),
		Health:       healthhandler.New(logger, health),
		Metrics:      promhttp.Handler(),
	}
	mw := Middleware{
		Tokens:  authService,
		Limiter: middlewarectx.NewRateLimiter(cfg.RPS, cfg.Burst),
		Metrics: middlewarectx.NewMetrics(prometheus.DefaultRegisterer),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, handlers, mw)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		health:     health,
		healthAddr: cfg.AddressGRPC,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер
// с таймаутом и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	healthCtx, stopHealth := context.WithCancel(ctx)
	defer stopHealth()
	go func() {
		if err := a.health.Run(healthCtx, a.healthAddr); err != nil {
			a.logger.Error("gRPC health server stopped", sl.Err(err))
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}

	stopHealth()
	if cerr := a.cache.Close(); cerr != nil {
		a.logger.Error("failed to close redis", sl.Err(cerr))
	}
	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close storage", sl.Err(cerr))
	}
	return err
}
