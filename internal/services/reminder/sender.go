package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

const maxDescription = 500

// NotificationCreator сохраняет уведомление пользователя.
type NotificationCreator interface {
	Create(ctx context.Context, req models.NotificationRequest) (*models.Notification, error)
}

// Sender превращает сообщения очереди в уведомления.
type Sender struct {
	log           *slog.Logger
	notifications NotificationCreator
}

// NewSender создает новый экземпляр Sender.
func NewSender(log *slog.Logger, notifications NotificationCreator) *Sender {
	return &Sender{log: log, notifications: notifications}
}

// Handle разбирает сообщение и создает одно уведомление на группу пользователя.
func (s *Sender) Handle(ctx context.Context, body []byte) error {
	const op = "reminder.Sender.Handle"

	var msg models.ReminderMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(msg.Group.Tareas) == 0 {
		return nil
	}

	req := models.NotificationRequest{
		Titulo:      title(msg.Kind),
		Descripcion: describe(msg),
		UsuarioID:   msg.Group.Info.UsuarioID,
	}
	if _, err := s.notifications.Create(ctx, req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("reminder stored",
		slog.String("kind", msg.Kind),
		slog.Int64("user_id", req.UsuarioID),
		slog.Int("tasks", len(msg.Group.Tareas)))
	return nil
}

func title(kind string) string {
	switch kind {
	case KindToday:
		return "Tareas para hoy"
	case KindTomorrow:
		return "Tareas para mañana"
	case KindOverdue:
		return "Tareas vencidas"
	default:
		return "Recordatorio de tareas"
	}
}

func describe(msg models.ReminderMessage) string {
	parts := make([]string, 0, len(msg.Group.Tareas))
	for _, t := range msg.Group.Tareas {
		parts = append(parts, fmt.Sprintf("%s (%s, %s)", t.Nombre, t.NombreParcela, t.FechaProgramada))
	}
	text := fmt.Sprintf("Tienes %d tarea(s) pendiente(s): %s", len(parts), strings.Join(parts, "; "))

	runes := []rune(text)
	if len(runes) > maxDescription {
		text = string(runes[:maxDescription-3]) + "..."
	}
	return text
}
