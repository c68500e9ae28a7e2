// Package health публикует состояние зависимостей через стандартный
// gRPC health-сервис (grpc.health.v1.Health).
//
// Server периодически опрашивает зарегистрированные Checker и выставляет
// статус SERVING, только если все проверки прошли. Отдельный статус есть
// у каждой проверки по её имени и у сервиса целиком (пустое имя и ServiceName).
package health

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
)

// ServiceName имя сервиса в health-протоколе.
const ServiceName = "greencontrol"

const checkTimeout = 3 * time.Second

// Checker проверяет доступность зависимости.
type Checker interface {
	Ping(ctx context.Context) error
}

// Server health-сервер.
type Server struct {
	log      *slog.Logger
	hs       *grpchealth.Server
	checks   map[string]Checker
	names    []string
	interval time.Duration
}

// NewServer создает сервер. Пока не прошла первая проверка, статус NOT_SERVING.
func NewServer(log *slog.Logger, interval time.Duration, checks map[string]Checker) *Server {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	hs := grpchealth.NewServer()
	s := &Server{log: log, hs: hs, checks: checks, names: names, interval: interval}
	s.setAll(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Register добавляет health-сервис в gRPC-сервер.
func (s *Server) Register(gs *grpc.Server) {
	healthpb.RegisterHealthServer(gs, s.hs)
}

// Check опрашивает все зависимости и обновляет статусы.
// Возвращает ошибки по именам упавших проверок.
func (s *Server) Check(ctx context.Context) map[string]error {
	failed := make(map[string]error)
	for _, name := range s.names {
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := s.checks[name].Ping(cctx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			failed[name] = err
			status = healthpb.HealthCheckResponse_NOT_SERVING
			s.log.Warn("health check failed", slog.String("check", name), sl.Err(err))
		}
		s.hs.SetServingStatus(name, status)
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if len(failed) > 0 {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.hs.SetServingStatus("", overall)
	s.hs.SetServingStatus(ServiceName, overall)
	return failed
}

// Watch выполняет Check сразу и затем с периодом interval до отмены ctx.
func (s *Server) Watch(ctx context.Context) {
	s.Check(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Run слушает addr и обслуживает health-запросы до отмены ctx.
func (s *Server) Run(ctx context.Context, addr string) error {
	const op = "health.Run"

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	gs := grpc.NewServer()
	s.Register(gs)

	go s.Watch(ctx)
	go func() {
		<-ctx.Done()
		s.hs.Shutdown()
		gs.GracefulStop()
	}()

	s.log.Info("gRPC health server starting", slog.String("address", addr))
	if err := gs.Serve(lis); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Server) setAll(status healthpb.HealthCheckResponse_ServingStatus) {
	s.hs.SetServingStatus("", status)
	s.hs.SetServingStatus(ServiceName, status)
	for _, name := range s.names {
		s.hs.SetServingStatus(name, status)
	}
}
