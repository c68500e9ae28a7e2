// Package reminder строит ленту напоминаний о невыполненных задачах и
// рассылает её через RabbitMQ.
//
// Лента группирует задачи по владельцу участка. Её читают внешняя
// автоматизация (маршруты /api/N8N) и собственный планировщик.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/lib/dates"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Repository источник открытых задач всех пользователей.
type Repository interface {
	ListOpenTasksScheduled(ctx context.Context, from *time.Time, to time.Time) ([]models.ScheduledTask, error)
}

// Service строит ленту напоминаний.
type Service struct {
	log  *slog.Logger
	repo Repository
	now  func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo, now: time.Now}
}

// Upcoming возвращает задачи на день today+days.
func (s *Service) Upcoming(ctx context.Context, days int) (*models.ReminderFeed, error) {
	return s.Range(ctx, days, days)
}

// Range возвращает задачи с датой в [today+from, today+to] включительно.
func (s *Service) Range(ctx context.Context, from, to int) (*models.ReminderFeed, error) {
	const op = "reminder.Range"
	if to < from {
		return &models.ReminderFeed{Usuarios: []models.ReminderGroup{}}, nil
	}
	today := dates.Day(s.now())
	start := today.AddDate(0, 0, from)
	end := today.AddDate(0, 0, to+1)

	tasks, err := s.repo.ListOpenTasksScheduled(ctx, &start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.ReminderFeed{Usuarios: Group(tasks)}, nil
}

// Today задачи на сегодня.
func (s *Service) Today(ctx context.Context) (*models.ReminderFeed, error) {
	return s.Upcoming(ctx, 0)
}

// Tomorrow задачи на завтра.
func (s *Service) Tomorrow(ctx context.Context) (*models.ReminderFeed, error) {
	return s.Upcoming(ctx, 1)
}

// Overdue возвращает открытые задачи с датой раньше сегодняшней.
func (s *Service) Overdue(ctx context.Context) (*models.ReminderFeed, error) {
	const op = "reminder.Overdue"
	tasks, err := s.repo.ListOpenTasksScheduled(ctx, nil, dates.Day(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.ReminderFeed{Usuarios: Group(tasks)}, nil
}

// Group собирает задачи по пользователям в порядке первого появления.
func Group(tasks []models.ScheduledTask) []models.ReminderGroup {
	groups := make([]models.ReminderGroup, 0)
	index := make(map[int64]int)
	for _, t := range tasks {
		i, ok := index[t.UsuarioID]
		if !ok {
			i = len(groups)
			index[t.UsuarioID] = i
			groups = append(groups, models.ReminderGroup{
				Info: models.ReminderUserInfo{
					UsuarioID: t.UsuarioID,
					Correo:    t.Correo,
					Telefono:  t.Telefono,
				},
				Tareas: []models.ReminderTask{},
			})
		}
		groups[i].Tareas = append(groups[i].Tareas, models.ReminderTask{
			Nombre:          t.Nombre,
			FechaProgramada: dates.FormatDMY(t.FechaProgramada),
			NombreParcela:   t.NombreParcela,
		})
	}
	return groups
}
