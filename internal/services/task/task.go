// Package task управляет задачами на участках.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/lib/dates"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Repository хранилище задач.
type Repository interface {
	ListTasks(ctx context.Context, userID int64) ([]*models.Task, error)
	ListTasksByParcel(ctx context.Context, parcelID, userID int64) ([]*models.Task, error)
	GetTask(ctx context.Context, id, userID int64) (*models.Task, error)
	CreateTask(ctx context.Context, t models.Task) (int64, error)
	UpdateTask(ctx context.Context, t models.Task, userID int64) error
	CompleteTask(ctx context.Context, id, userID int64, at time.Time) error
	DeleteTask(ctx context.Context, id, userID int64) error
	ParcelName(ctx context.Context, id, userID int64) (string, error)
}

// Service бизнес-логика задач.
type Service struct {
	log  *slog.Logger
	repo Repository
	now  func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo, now: time.Now}
}

// List возвращает задачи пользователя по дате выполнения.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.Task, error) {
	const op = "task.List"
	tasks, err := s.repo.ListTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

// ListByParcel возвращает задачи одного участка. Для чужого участка список пуст.
func (s *Service) ListByParcel(ctx context.Context, parcelID, userID int64) ([]*models.Task, error) {
	const op = "task.ListByParcel"
	tasks, err := s.repo.ListTasksByParcel(ctx, parcelID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.Task, error) {
	const op = "task.GetByID"
	t, err := s.repo.GetTask(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// Create добавляет задачу на участок пользователя.
func (s *Service) Create(ctx context.Context, req models.TaskRequest, userID int64) (*models.Task, error) {
	const op = "task.Create"

	scheduled, err := dates.Parse(req.FechaProgramada)
	if err != nil {
		return nil, models.BadDate("fechaProgramada")
	}
	if _, err := s.repo.ParcelName(ctx, req.ParcelaID, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateTask(ctx, models.Task{
		FechaProgramada: scheduled,
		Nombre:          req.Nombre,
		Descripcion:     req.Descripcion,
		ParcelaID:       req.ParcelaID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetByID(ctx, id, userID)
}

// Update меняет только присутствующие в запросе поля.
func (s *Service) Update(ctx context.Context, id int64, req models.TaskUpdate, userID int64) (*models.Task, error) {
	const op = "task.Update"

	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetTask(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := apply(t, req); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTask(ctx, *t, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetByID(ctx, id, userID)
}

// MarkCompleted отмечает задачу выполненной. Повторный вызов не меняет дату.
func (s *Service) MarkCompleted(ctx context.Context, id, userID int64) (*models.Task, error) {
	const op = "task.MarkCompleted"
	if err := s.repo.CompleteTask(ctx, id, userID, s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetByID(ctx, id, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	const op = "task.Delete"
	if err := s.repo.DeleteTask(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func apply(t *models.Task, req models.TaskUpdate) error {
	if v, ok := req.FechaProgramada.Get(); ok {
		d, err := dates.Parse(v)
		if err != nil {
			return models.BadDate("fechaProgramada")
		}
		t.FechaProgramada = d
	}
	if req.FechaFinalizacion.Set {
		v, _ := req.FechaFinalizacion.Get()
		d, err := dates.ParseOptional(&v)
		if err != nil {
			return models.BadDate("fechaFinalizacion")
		}
		t.FechaFinalizacion = d
	}
	if v, ok := req.Nombre.Get(); ok && v != "" {
		t.Nombre = v
	}
	if v, ok := req.Descripcion.Get(); ok && v != "" {
		t.Descripcion = v
	}
	t.Completada = t.FechaFinalizacion != nil
	return nil
}
