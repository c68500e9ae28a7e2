package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// ListCrops возвращает культуры пользователя.
func (s *Storage) ListCrops(ctx context.Context, userID int64) ([]*models.Crop, error) {
	const op = "storage.ListCrops"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT id, nombre, especie, usuario_id FROM cultivos WHERE usuario_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Crop, 0)
	for rows.Next() {
		var c models.Crop
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Especie, &c.UsuarioID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCrop возвращает культуру пользователя.
func (s *Storage) GetCrop(ctx context.Context, id, userID int64) (*models.Crop, error) {
	const op = "storage.GetCrop"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var c models.Crop
	err := s.conn(ctx).QueryRowContext(ctx,
		`SELECT id, nombre, especie, usuario_id FROM cultivos WHERE id = $1 AND usuario_id = $2`, id, userID).
		Scan(&c.ID, &c.Nombre, &c.Especie, &c.UsuarioID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrCropNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// CreateCrop сохраняет культуру.
func (s *Storage) CreateCrop(ctx context.Context, c models.Crop) (int64, error) {
	const op = "storage.CreateCrop"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int64
	err := s.conn(ctx).QueryRowContext(ctx,
		`INSERT INTO cultivos (nombre, especie, usuario_id) VALUES ($1, $2, $3) RETURNING id`,
		c.Nombre, c.Especie, c.UsuarioID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateCrop меняет название и вид культуры.
func (s *Storage) UpdateCrop(ctx context.Context, c models.Crop) error {
	const op = "storage.UpdateCrop"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.conn(ctx).ExecContext(ctx,
		`UPDATE cultivos SET nombre = $1, especie = $2 WHERE id = $3 AND usuario_id = $4`,
		c.Nombre, c.Especie, c.ID, c.UsuarioID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrCropNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteCrop удаляет культуру. Культура, на которую ссылается посадка, даёт ErrCropInUse.
func (s *Storage) DeleteCrop(ctx context.Context, id, userID int64) error {
	const op = "storage.DeleteCrop"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM cultivos WHERE id = $1 AND usuario_id = $2`, id, userID)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, models.ErrCropInUse)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrCropNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
