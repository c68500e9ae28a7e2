// Package notification хранит уведомления пользователей.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Repository хранилище уведомлений.
type Repository interface {
	CreateNotification(ctx context.Context, n models.Notification) (int64, error)
	ListNotifications(ctx context.Context, userID int64) ([]*models.Notification, error)
	GetNotification(ctx context.Context, id, userID int64) (*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID int64, at time.Time) error
}

// Service бизнес-логика уведомлений.
type Service struct {
	log  *slog.Logger
	repo Repository
	now  func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo, now: time.Now}
}

// Create сохраняет уведомление для пользователя с датой отправки now.
func (s *Service) Create(ctx context.Context, req models.NotificationRequest) (*models.Notification, error) {
	const op = "notification.Create"
	n := models.Notification{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		FechaEnvio:  s.now(),
		UsuarioID:   req.UsuarioID,
	}
	id, err := s.repo.CreateNotification(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	n.ID = id
	return &n, nil
}

// List возвращает уведомления, новые первыми.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.Notification, error) {
	const op = "notification.List"
	list, err := s.repo.ListNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.Notification, error) {
	const op = "notification.GetByID"
	n, err := s.repo.GetNotification(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// MarkRead отмечает уведомление прочитанным. Первая дата прочтения сохраняется.
func (s *Service) MarkRead(ctx context.Context, id, userID int64) (*models.Notification, error) {
	const op = "notification.MarkRead"
	if err := s.repo.MarkNotificationRead(ctx, id, userID, s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetByID(ctx, id, userID)
}
