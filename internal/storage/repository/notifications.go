package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

const notificationColumns = `id, titulo, descripcion, fecha_envio, fecha_leido, usuario_id`

func scanNotification(row rowsScanner) (*models.Notification, error) {
	var n models.Notification
	if err := row.Scan(&n.ID, &n.Titulo, &n.Descripcion, &n.FechaEnvio, &n.FechaLeido, &n.UsuarioID); err != nil {
		return nil, err
	}
	n.Leida = n.FechaLeido != nil
	return &n, nil
}

// CreateNotification сохраняет уведомление. Несуществующий получатель даёт ErrUserNotFound.
func (s *Storage) CreateNotification(ctx context.Context, n models.Notification) (int64, error) {
	const op = "storage.CreateNotification"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int64
	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO notificaciones (titulo, descripcion, fecha_envio, usuario_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		n.Titulo, n.Descripcion, n.FechaEnvio, n.UsuarioID).Scan(&id)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return 0, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListNotifications возвращает уведомления пользователя, новые первыми.
func (s *Storage) ListNotifications(ctx context.Context, userID int64) ([]*models.Notification, error) {
	const op = "storage.ListNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notificaciones WHERE usuario_id = $1 ORDER BY fecha_envio DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetNotification возвращает уведомление пользователя.
func (s *Storage) GetNotification(ctx context.Context, id, userID int64) (*models.Notification, error) {
	const op = "storage.GetNotification"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	n, err := scanNotification(s.conn(ctx).QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notificaciones WHERE id = $1 AND usuario_id = $2`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotificationNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// MarkNotificationRead проставляет дату прочтения, если она ещё не задана.
func (s *Storage) MarkNotificationRead(ctx context.Context, id, userID int64, at time.Time) error {
	const op = "storage.MarkNotificationRead"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.conn(ctx).ExecContext(ctx,
		`UPDATE notificaciones SET fecha_leido = COALESCE(fecha_leido, $1) WHERE id = $2 AND usuario_id = $3`,
		at, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrNotificationNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
