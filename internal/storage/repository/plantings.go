package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

const plantingSelect = `SELECT s.id, s.parcela_id, p.nombre_parcela, s.cultivo_id, c.nombre, c.especie,
			  s.fecha_inicio, s.fecha_final, s.fecha_germinacion, s.fecha_floracion
			  FROM siembras s
			  JOIN parcelas p ON p.id = s.parcela_id
			  JOIN cultivos c ON c.id = s.cultivo_id`

func scanPlanting(row rowsScanner) (*models.Planting, error) {
	var (
		pl      models.Planting
		nombre  string
		especie string
	)
	err := row.Scan(&pl.ID, &pl.ParcelaID, &pl.NombreParcela, &pl.CultivoID, &nombre, &especie,
		&pl.FechaInicio, &pl.FechaFinal, &pl.FechaGerminacion, &pl.FechaFloracion)
	if err != nil {
		return nil, err
	}
	pl.NombreCultivo = nombre + " " + especie
	pl.Activa = pl.IsActive()
	return &pl, nil
}

// ListPlantings возвращает посадки на участках пользователя.
func (s *Storage) ListPlantings(ctx context.Context, userID int64) ([]*models.Planting, error) {
	const op = "storage.ListPlantings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.conn(ctx).QueryContext(ctx, plantingSelect+` WHERE p.usuario_id = $1 ORDER BY s.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Planting, 0)
	for rows.Next() {
		pl, err := scanPlanting(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlanting возвращает посадку, если её участок принадлежит пользователю.
func (s *Storage) GetPlanting(ctx context.Context, id, userID int64) (*models.Planting, error) {
	const op = "storage.GetPlanting"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	pl, err := scanPlanting(s.conn(ctx).QueryRowContext(ctx,
		plantingSelect+` WHERE s.id = $1 AND p.usuario_id = $2`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPlantingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pl, nil
}

// PlantingByParcel возвращает посадку участка независимо от того, завершена ли она.
func (s *Storage) PlantingByParcel(ctx context.Context, parcelID int64) (*models.Planting, error) {
	const op = "storage.PlantingByParcel"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	pl, err := scanPlanting(s.conn(ctx).QueryRowContext(ctx, plantingSelect+` WHERE s.parcela_id = $1`, parcelID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPlantingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pl, nil
}

// CreatePlanting сохраняет посадку. Повторная строка для участка даёт ErrParcelHasPlanting.
func (s *Storage) CreatePlanting(ctx context.Context, parcelID, cropID int64, d models.PlantingDates) (int64, error) {
	const op = "storage.CreatePlanting"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO siembras (parcela_id, cultivo_id, fecha_inicio, fecha_final, fecha_germinacion, fecha_floracion)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var id int64
	err := s.conn(ctx).QueryRowContext(ctx, query,
		parcelID, cropID, d.FechaInicio, d.FechaFinal, d.FechaGerminacion, d.FechaFloracion).Scan(&id)
	if err != nil {
		switch pgCode(err) {
		case codeUniqueViolation:
			return 0, fmt.Errorf("%s: %w", op, models.ErrParcelHasPlanting)
		case codeForeignKeyViolation:
			return 0, fmt.Errorf("%s: %w", op, models.ErrCropNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdatePlantingDates заменяет дату окончания, прорастания и цветения.
func (s *Storage) UpdatePlantingDates(ctx context.Context, id, userID int64, d models.PlantingDates) error {
	const op = "storage.UpdatePlantingDates"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE siembras s
			  SET fecha_final = $1, fecha_germinacion = $2, fecha_floracion = $3
			  FROM parcelas p
			  WHERE s.id = $4 AND p.id = s.parcela_id AND p.usuario_id = $5`
	res, err := s.conn(ctx).ExecContext(ctx, query, d.FechaFinal, d.FechaGerminacion, d.FechaFloracion, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrPlantingNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeletePlanting удаляет посадку пользователя.
func (s *Storage) DeletePlanting(ctx context.Context, id, userID int64) error {
	const op = "storage.DeletePlanting"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.conn(ctx).ExecContext(ctx,
		`DELETE FROM siembras s USING parcelas p WHERE s.id = $1 AND p.id = s.parcela_id AND p.usuario_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrPlantingNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
