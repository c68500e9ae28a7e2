// Package repository реализует хранилище GreenControl на PostgreSQL.
//
// Все методы, работающие с данными пользователя, принимают идентификатор владельца
// обязательным параметром и фильтруют по нему в SQL. Чужая запись неотличима от
// отсутствующей и возвращается как доменная ошибка «не найдено».
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/greencontrol/internal/dbx"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// Storage инкапсулирует пул соединений PostgreSQL.
type Storage struct {
	DB *sql.DB
}

type txKey struct{}

// New открывает пул и проверяет соединение.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{DB: db}, nil
}

// NewWithDB оборачивает готовое подключение.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{DB: db}
}

// InTx выполняет fn в транзакции. Методы Storage, вызванные с переданным в fn
// контекстом, работают внутри этой транзакции. Вложенный вызов переиспользует внешнюю.
func (s *Storage) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "storage.InTx"
	if _, ok := ctx.Value(txKey{}).(dbx.DBTX); ok {
		return fn(ctx)
	}
	err := dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close закрывает пул.
func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) conn(ctx context.Context) dbx.DBTX {
	if tx, ok := ctx.Value(txKey{}).(dbx.DBTX); ok {
		return tx
	}
	return s.DB
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// outOfRange переводит нарушение CHECK и переполнение NUMERIC в ошибку валидации.
func outOfRange(err error) bool {
	switch pgCode(err) {
	case codeCheckViolation, codeNumericOutOfRange:
		return true
	}
	return false
}

// affected переводит ноль затронутых строк в notFound.
func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// rowsScanner общий интерфейс *sql.Row и *sql.Rows.
type rowsScanner interface {
	Scan(dest ...any) error
}
