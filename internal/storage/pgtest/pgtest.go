//go:build integration

// Package pgtest поднимает PostgreSQL в контейнере для интеграционных тестов
// и наполняет его тестовыми данными.
package pgtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	// Драйвер pgx для database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MigrationsPath абсолютный путь к каталогу migrations в корне модуля.
func MigrationsPath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

// Start запускает контейнер postgres и возвращает подключение к пустой базе.
// Контейнер останавливается в t.Cleanup.
func Start(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("greencontrol"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	return db
}

// Factory создаёт тестовые записи напрямую через SQL.
type Factory struct {
	DB *sql.DB
}

// User создаёт пользователя и возвращает его ID.
func (f Factory) User(t *testing.T, correo string) int64 {
	t.Helper()
	var id int64
	err := f.DB.QueryRow(`INSERT INTO users (nombre, telefono, correo, contrasena)
		VALUES ('Ana', '3000000000', $1, 'hash') RETURNING id`, correo).Scan(&id)
	require.NoError(t, err)
	return id
}

// Parcel создаёт участок пользователя.
func (f Factory) Parcel(t *testing.T, userID int64, name string) int64 {
	t.Helper()
	var id int64
	err := f.DB.QueryRow(`INSERT INTO parcelas (area, ubicacion, nombre_parcela, usuario_id)
		VALUES (2.5, 'Vereda El Rosal', $1, $2) RETURNING id`, name, userID).Scan(&id)
	require.NoError(t, err)
	return id
}

// Crop создаёт культуру пользователя.
func (f Factory) Crop(t *testing.T, userID int64, nombre, especie string) int64 {
	t.Helper()
	var id int64
	err := f.DB.QueryRow(`INSERT INTO cultivos (nombre, especie, usuario_id)
		VALUES ($1, $2, $3) RETURNING id`, nombre, especie, userID).Scan(&id)
	require.NoError(t, err)
	return id
}

// Task создаёт открытую задачу на участке.
func (f Factory) Task(t *testing.T, parcelID int64, nombre string, at time.Time) int64 {
	t.Helper()
	var id int64
	err := f.DB.QueryRow(`INSERT INTO tareas (fecha_programada, nombre, descripcion, parcela_id)
		VALUES ($1, $2, 'desc', $3) RETURNING id`, at, nombre, parcelID).Scan(&id)
	require.NoError(t, err)
	return id
}

// Expense создаёт расход, parcelID может быть nil.
func (f Factory) Expense(t *testing.T, userID int64, parcelID *int64, monto string) int64 {
	t.Helper()
	var id int64
	err := f.DB.QueryRow(`INSERT INTO gastos (fecha, monto, concepto, usuario_id, parcela_id)
		VALUES (now(), $1::numeric, 'Abono', $2, $3) RETURNING id`, monto, userID, parcelID).Scan(&id)
	require.NoError(t, err)
	return id
}
