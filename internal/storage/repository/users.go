package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

const userColumns = `id, nombre, apellido, telefono, correo, contrasena, fecha_creacion`

func scanUser(row rowsScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Telefono, &u.Correo, &u.PasswordHash, &u.FechaCreacion); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser сохраняет пользователя. Занятая почта даёт ErrDuplicateEmail.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (nombre, apellido, telefono, correo, contrasena)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id int64
	err := s.conn(ctx).QueryRowContext(ctx, query,
		user.Nombre, user.Apellido, user.Telefono, user.Correo, user.PasswordHash).Scan(&id)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, models.ErrDuplicateEmail)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// EmailExists проверяет, занята ли почта. Сравнение точное.
func (s *Storage) EmailExists(ctx context.Context, correo string) (bool, error) {
	const op = "storage.EmailExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	err := s.conn(ctx).QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE correo = $1)`, correo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// GetUserByEmail ищет пользователя по почте.
func (s *Storage) GetUserByEmail(ctx context.Context, correo string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.conn(ctx).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE correo = $1`, correo)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// GetUserByID ищет пользователя по идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.conn(ctx).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateUserProfile меняет имя, фамилию и телефон и возвращает обновлённую запись.
func (s *Storage) UpdateUserProfile(ctx context.Context, id int64, req models.ProfileRequest) (*models.User, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET nombre = $1, apellido = $2, telefono = $3
			  WHERE id = $4
			  RETURNING ` + userColumns
	user, err := scanUser(s.conn(ctx).QueryRowContext(ctx, query, req.Nombre, req.Apellido, req.Telefono, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateUserPassword сохраняет новый хэш пароля.
func (s *Storage) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	const op = "storage.UpdateUserPassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.conn(ctx).ExecContext(ctx, `UPDATE users SET contrasena = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrUserNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
