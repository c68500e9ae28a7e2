package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// ErrUnknownKind неизвестный вид финансовой записи.
var ErrUnknownKind = errors.New("unknown finance kind")

// financeTable возвращает таблицу для вида записи. Имя таблицы подставляется
// в SQL, поэтому допускаются только значения из этого списка.
func financeTable(kind models.FinanceKind) (string, error) {
	switch kind {
	case models.KindExpense:
		return "gastos", nil
	case models.KindIncome:
		return "ingresos", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func financeSelect(table string) string {
	return `SELECT f.id, f.fecha, f.monto, f.concepto, f.nota_adicional, f.parcela_id, p.nombre_parcela, f.usuario_id
			  FROM ` + table + ` f
			  LEFT JOIN parcelas p ON p.id = f.parcela_id`
}

func scanFinance(row rowsScanner) (*models.FinanceRecord, error) {
	var r models.FinanceRecord
	err := row.Scan(&r.ID, &r.Fecha, &r.Monto, &r.Concepto, &r.NotaAdicional, &r.ParcelaID, &r.NombreParcela, &r.UsuarioID)
	if err != nil {
		return nil, err
	}
	r.EsGeneral = r.ParcelaID == nil
	return &r, nil
}

// ListFinance возвращает записи пользователя по фильтру, новые первыми.
func (s *Storage) ListFinance(ctx context.Context, kind models.FinanceKind, userID int64, filter models.FinanceFilter) ([]*models.FinanceRecord, error) {
	const op = "storage.ListFinance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	table, err := financeTable(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	where := []string{"f.usuario_id = $1"}
	args := []any{userID}
	switch filter.Scope() {
	case models.ScopeGeneral:
		where = append(where, "f.parcela_id IS NULL")
	case models.ScopeParcel:
		where = append(where, "f.parcela_id IS NOT NULL")
	}
	if filter.ParcelaID != nil {
		args = append(args, *filter.ParcelaID)
		where = append(where, fmt.Sprintf("f.parcela_id = $%d", len(args)))
	}

	query := financeSelect(table) + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY f.fecha DESC, f.id DESC`
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.FinanceRecord, 0)
	for rows.Next() {
		r, err := scanFinance(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetFinance возвращает запись пользователя.
func (s *Storage) GetFinance(ctx context.Context, kind models.FinanceKind, id, userID int64) (*models.FinanceRecord, error) {
	const op = "storage.GetFinance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	table, err := financeTable(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r, err := scanFinance(s.conn(ctx).QueryRowContext(ctx,
		financeSelect(table)+` WHERE f.id = $1 AND f.usuario_id = $2`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, kind.NotFound())
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// CreateFinance сохраняет запись. Принадлежность участка проверяет вызывающий.
func (s *Storage) CreateFinance(ctx context.Context, kind models.FinanceKind, r models.FinanceRecord) (int64, error) {
	const op = "storage.CreateFinance"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	table, err := financeTable(kind)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO ` + table + ` (fecha, monto, concepto, nota_adicional, usuario_id, parcela_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var id int64
	err = s.conn(ctx).QueryRowContext(ctx, query,
		r.Fecha, r.Monto, r.Concepto, r.NotaAdicional, r.UsuarioID, r.ParcelaID).Scan(&id)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return 0, fmt.Errorf("%s: %w", op, models.ErrParcelNotFound)
		}
		if outOfRange(err) {
			return 0, fmt.Errorf("%s: %w", op, models.ErrOutOfRange)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateFinance заменяет поля записи.
func (s *Storage) UpdateFinance(ctx context.Context, kind models.FinanceKind, r models.FinanceRecord) error {
	const op = "storage.UpdateFinance"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	table, err := financeTable(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `UPDATE ` + table + `
			  SET fecha = $1, monto = $2, concepto = $3, nota_adicional = $4, parcela_id = $5
			  WHERE id = $6 AND usuario_id = $7`
	res, err := s.conn(ctx).ExecContext(ctx, query,
		r.Fecha, r.Monto, r.Concepto, r.NotaAdicional, r.ParcelaID, r.ID, r.UsuarioID)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, models.ErrParcelNotFound)
		}
		if outOfRange(err) {
			return fmt.Errorf("%s: %w", op, models.ErrOutOfRange)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, kind.NotFound()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteFinance удаляет запись пользователя.
func (s *Storage) DeleteFinance(ctx context.Context, kind models.FinanceKind, id, userID int64) error {
	const op = "storage.DeleteFinance"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	table, err := financeTable(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1 AND usuario_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = affected(res, kind.NotFound()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
