package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/greencontrol/internal/config"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache, err := InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := models.AccountingSummary{
		Totales: models.Totals{
			IngresosTotales: decimal.NewFromInt(300000),
			GastosTotales:   decimal.NewFromInt(100000),
			BalanceTotal:    decimal.NewFromInt(200000),
			MargenPromedio:  decimal.RequireFromString("66.67"),
		},
		AnaliticasTemporales: []models.MonthlyRow{{Mes: "2025-01", Ingresos: decimal.NewFromInt(1), Gastos: decimal.Zero}},
	}
	require.NoError(t, cache.Set(ctx, "report:summary:1", expected, time.Minute))

	var actual models.AccountingSummary
	found, err := cache.Get(ctx, "report:summary:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, expected.Totales.BalanceTotal.Equal(actual.Totales.BalanceTotal))
	assert.True(t, expected.Totales.MargenPromedio.Equal(actual.Totales.MargenPromedio))
	require.Len(t, actual.AnaliticasTemporales, 1)
	assert.Equal(t, "2025-01", actual.AnaliticasTemporales[0].Mes)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out models.AccountingSummary
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExpiration(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	var out string
	found, err := cache.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "report:summary:7", map[string]int{"a": 1}, time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "report:summary:7"))
	assert.False(t, mr.Exists("report:summary:7"))

	// повторное удаление не ошибка
	require.NoError(t, cache.Invalidate(ctx, "report:summary:7"))
}

func TestGet_CorruptedValue(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("broken", "{not json"))

	var out map[string]any
	found, err := cache.Get(context.Background(), "broken", &out)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestInitServer_Unreachable(t *testing.T) {
	_, err := InitServer(context.Background(), config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	})
	assert.Error(t, err)
}
