package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

const taskSelect = `SELECT t.id, t.fecha_programada, t.fecha_finalizacion, t.nombre, t.descripcion, t.parcela_id, p.nombre_parcela
			  FROM tareas t
			  JOIN parcelas p ON p.id = t.parcela_id`

func scanTask(row rowsScanner) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.FechaProgramada, &t.FechaFinalizacion, &t.Nombre, &t.Descripcion, &t.ParcelaID, &t.NombreParcela)
	if err != nil {
		return nil, err
	}
	t.Completada = t.FechaFinalizacion != nil
	return &t, nil
}

func (s *Storage) queryTasks(ctx context.Context, op, query string, args ...any) ([]*models.Task, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListTasks возвращает задачи пользователя по возрастанию даты.
func (s *Storage) ListTasks(ctx context.Context, userID int64) ([]*models.Task, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.queryTasks(ctx, op, taskSelect+` WHERE p.usuario_id = $1 ORDER BY t.fecha_programada, t.id`, userID)
}

// ListTasksByParcel возвращает задачи одного участка пользователя.
func (s *Storage) ListTasksByParcel(ctx context.Context, parcelID, userID int64) ([]*models.Task, error) {
	const op = "storage.ListTasksByParcel"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.queryTasks(ctx, op,
		taskSelect+` WHERE t.parcela_id = $1 AND p.usuario_id = $2 ORDER BY t.fecha_programada, t.id`,
		parcelID, userID)
}

// GetTask возвращает задачу пользователя.
func (s *Storage) GetTask(ctx context.Context, id, userID int64) (*models.Task, error) {
	const op = "storage.GetTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	t, err := scanTask(s.conn(ctx).QueryRowContext(ctx, taskSelect+` WHERE t.id = $1 AND p.usuario_id = $2`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrTaskNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// CreateTask сохраняет задачу. Принадлежность участка проверяет вызывающий.
func (s *Storage) CreateTask(ctx context.Context, t models.Task) (int64, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tareas (fecha_programada, fecha_finalizacion, nombre, descripcion, parcela_id)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id int64
	err := s.conn(ctx).QueryRowContext(ctx, query,
		t.FechaProgramada, t.FechaFinalizacion, t.Nombre, t.Descripcion, t.ParcelaID).Scan(&id)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return 0, fmt.Errorf("%s: %w", op, models.ErrParcelNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateTask записывает все изменяемые поля задачи.
func (s *Storage) UpdateTask(ctx context.Context, t models.Task, userID int64) error {
	const op = "storage.UpdateTask"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tareas t
			  SET fecha_programada = $1, fecha_finalizacion = $2, nombre = $3, descripcion = $4
			  FROM parcelas p
			  WHERE t.id = $5 AND p.id = t.parcela_id AND p.usuario_id = $6`
	res, err := s.conn(ctx).ExecContext(ctx, query,
		t.FechaProgramada, t.FechaFinalizacion, t.Nombre, t.Descripcion, t.ID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrTaskNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CompleteTask отмечает задачу выполненной. Уже выполненная задача сохраняет прежнюю дату.
func (s *Storage) CompleteTask(ctx context.Context, id, userID int64, at time.Time) error {
	const op = "storage.CompleteTask"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tareas t
			  SET fecha_finalizacion = COALESCE(t.fecha_finalizacion, $1)
			  FROM parcelas p
			  WHERE t.id = $2 AND p.id = t.parcela_id AND p.usuario_id = $3`
	res, err := s.conn(ctx).ExecContext(ctx, query, at, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrTaskNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteTask удаляет задачу пользователя.
func (s *Storage) DeleteTask(ctx context.Context, id, userID int64) error {
	const op = "storage.DeleteTask"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.conn(ctx).ExecContext(ctx,
		`DELETE FROM tareas t USING parcelas p WHERE t.id = $1 AND p.id = t.parcela_id AND p.usuario_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrTaskNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListOpenTasksScheduled возвращает невыполненные задачи всех пользователей с датой
// в полуинтервале [from, to). Нулевой from снимает нижнюю границу.
func (s *Storage) ListOpenTasksScheduled(ctx context.Context, from *time.Time, to time.Time) ([]models.ScheduledTask, error) {
	const op = "storage.ListOpenTasksScheduled"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.id, t.nombre, t.fecha_programada, p.nombre_parcela, u.id, u.correo, u.telefono
			  FROM tareas t
			  JOIN parcelas p ON p.id = t.parcela_id
			  JOIN users u ON u.id = p.usuario_id
			  WHERE t.fecha_finalizacion IS NULL
			    AND ($1::timestamptz IS NULL OR t.fecha_programada >= $1)
			    AND t.fecha_programada < $2
			  ORDER BY t.fecha_programada, t.id`
	rows, err := s.conn(ctx).QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.ScheduledTask, 0)
	for rows.Next() {
		var st models.ScheduledTask
		if err := rows.Scan(&st.TaskID, &st.Nombre, &st.FechaProgramada, &st.NombreParcela,
			&st.UsuarioID, &st.Correo, &st.Telefono); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
