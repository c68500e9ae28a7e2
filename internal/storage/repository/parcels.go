package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Участок выбирается вместе с его посадкой (не более одной строки на участок) и культурой.
const parcelSelect = `SELECT p.id, p.area, p.ubicacion, p.nombre_parcela, p.tipo_suelo, p.ph_suelo, p.usuario_id,
			  s.id, s.cultivo_id, c.nombre, s.fecha_inicio, s.fecha_final, s.fecha_germinacion, s.fecha_floracion
			  FROM parcelas p
			  LEFT JOIN siembras s ON s.parcela_id = p.id
			  LEFT JOIN cultivos c ON c.id = s.cultivo_id`

func scanParcel(row rowsScanner) (*models.Parcel, error) {
	var (
		p           models.Parcel
		plantingID  *int64
		cropID      *int64
		cropName    *string
		fechaInicio *time.Time
		fechaFinal  *time.Time
		fechaGerm   *time.Time
		fechaFlor   *time.Time
	)
	err := row.Scan(&p.ID, &p.Area, &p.Ubicacion, &p.NombreParcela, &p.TipoSuelo, &p.PhSuelo, &p.UsuarioID,
		&plantingID, &cropID, &cropName, &fechaInicio, &fechaFinal, &fechaGerm, &fechaFlor)
	if err != nil {
		return nil, err
	}

	// Сводка выводится только для активной посадки.
	if plantingID != nil && fechaFinal == nil {
		p.TieneSiembra = true
		current := &models.Planting{
			ID:               *plantingID,
			ParcelaID:        p.ID,
			NombreParcela:    p.NombreParcela,
			FechaGerminacion: fechaGerm,
			FechaFloracion:   fechaFlor,
			Activa:           true,
		}
		if cropID != nil {
			current.CultivoID = *cropID
		}
		if cropName != nil {
			current.NombreCultivo = *cropName
		}
		if fechaInicio != nil {
			current.FechaInicio = *fechaInicio
		}
		p.SiembraActual = current
	}
	return &p, nil
}

// ListParcels возвращает участки пользователя.
func (s *Storage) ListParcels(ctx context.Context, userID int64) ([]*models.Parcel, error) {
	const op = "storage.ListParcels"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.conn(ctx).QueryContext(ctx, parcelSelect+` WHERE p.usuario_id = $1 ORDER BY p.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Parcel, 0)
	for rows.Next() {
		p, err := scanParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetParcel возвращает участок пользователя.
func (s *Storage) GetParcel(ctx context.Context, id, userID int64) (*models.Parcel, error) {
	const op = "storage.GetParcel"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row := s.conn(ctx).QueryRowContext(ctx, parcelSelect+` WHERE p.id = $1 AND p.usuario_id = $2`, id, userID)
	p, err := scanParcel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrParcelNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ParcelName возвращает название участка, если он принадлежит пользователю.
func (s *Storage) ParcelName(ctx context.Context, id, userID int64) (string, error) {
	const op = "storage.ParcelName"
	return s.parcelName(ctx, op, `SELECT nombre_parcela FROM parcelas WHERE id = $1 AND usuario_id = $2`, id, userID)
}

// LockParcel как ParcelName, но блокирует строку участка до конца транзакции.
// Имеет смысл только внутри InTx.
func (s *Storage) LockParcel(ctx context.Context, id, userID int64) (string, error) {
	const op = "storage.LockParcel"
	return s.parcelName(ctx, op, `SELECT nombre_parcela FROM parcelas WHERE id = $1 AND usuario_id = $2 FOR UPDATE`, id, userID)
}

func (s *Storage) parcelName(ctx context.Context, op, query string, id, userID int64) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var name string
	err := s.conn(ctx).QueryRowContext(ctx, query, id, userID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, models.ErrParcelNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return name, nil
}

// CreateParcel сохраняет участок и возвращает его ID.
func (s *Storage) CreateParcel(ctx context.Context, p models.Parcel) (int64, error) {
	const op = "storage.CreateParcel"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO parcelas (area, ubicacion, nombre_parcela, tipo_suelo, ph_suelo, usuario_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var id int64
	err := s.conn(ctx).QueryRowContext(ctx, query,
		p.Area, p.Ubicacion, p.NombreParcela, p.TipoSuelo, p.PhSuelo, p.UsuarioID).Scan(&id)
	if err != nil {
		if outOfRange(err) {
			return 0, fmt.Errorf("%s: %w", op, models.ErrOutOfRange)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateParcel полностью заменяет изменяемые поля участка.
func (s *Storage) UpdateParcel(ctx context.Context, p models.Parcel) error {
	const op = "storage.UpdateParcel"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE parcelas
			  SET area = $1, ubicacion = $2, nombre_parcela = $3, tipo_suelo = $4, ph_suelo = $5
			  WHERE id = $6 AND usuario_id = $7`
	res, err := s.conn(ctx).ExecContext(ctx, query,
		p.Area, p.Ubicacion, p.NombreParcela, p.TipoSuelo, p.PhSuelo, p.ID, p.UsuarioID)
	if err != nil {
		if outOfRange(err) {
			return fmt.Errorf("%s: %w", op, models.ErrOutOfRange)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrParcelNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteParcel удаляет участок. Посадка и задачи удаляются каскадом,
// у расходов и доходов ссылка на участок обнуляется.
func (s *Storage) DeleteParcel(ctx context.Context, id, userID int64) error {
	const op = "storage.DeleteParcel"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM parcelas WHERE id = $1 AND usuario_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, models.ErrParcelNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
