package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Виды напоминаний в сообщении очереди.
const (
	KindToday    = "hoy"
	KindTomorrow = "manana"
	KindOverdue  = "vencidas"
)

// Ключи маршрутизации обменника notifications.
const (
	RoutingUpcoming = "tasks.upcoming"
	RoutingOverdue  = "tasks.overdue"
)

// Publisher отправляет сообщение в обменник.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Scheduler периодически публикует ленту напоминаний.
type Scheduler struct {
	log       *slog.Logger
	feed      *Service
	publisher Publisher
	interval  time.Duration
}

// NewScheduler создает новый экземпляр Scheduler.
func NewScheduler(log *slog.Logger, feed *Service, publisher Publisher, interval time.Duration) *Scheduler {
	return &Scheduler{
		log:       log,
		feed:      feed,
		publisher: publisher,
		interval:  interval,
	}
}

// Run публикует напоминания сразу и затем каждые interval до отмены ctx.
func (s *Scheduler) Run(ctx context.Context) {
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce публикует задачи на сегодня, на завтра и просроченные. Возвращает число сообщений.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	s.log.Info("starting reminder run")

	batches := []struct {
		kind  string
		key   string
		fetch func(context.Context) (*models.ReminderFeed, error)
	}{
		{KindToday, RoutingUpcoming, s.feed.Today},
		{KindTomorrow, RoutingUpcoming, s.feed.Tomorrow},
		{KindOverdue, RoutingOverdue, s.feed.Overdue},
	}

	published := 0
	for _, b := range batches {
		feed, err := b.fetch(ctx)
		if err != nil {
			s.log.Error("failed to build reminder feed", slog.String("kind", b.kind), sl.Err(err))
			continue
		}
		for _, group := range feed.Usuarios {
			msg := models.ReminderMessage{Kind: b.kind, Group: group}
			if err := s.publisher.Publish(ctx, b.key, msg); err != nil {
				s.log.Error("failed to publish reminder",
					slog.String("kind", b.kind),
					slog.Int64("user_id", group.Info.UsuarioID),
					sl.Err(err))
				continue
			}
			published++
		}
	}

	s.log.Info("reminder run finished", slog.Int("published", published))
	return published
}
