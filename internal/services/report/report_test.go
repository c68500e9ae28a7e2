package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/greencontrol/internal/cache"
	"github.com/magabrotheeeer/greencontrol/internal/config"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
	"github.com/magabrotheeeer/greencontrol/internal/services/report"
)

type FinanceRepoMock struct {
	mock.Mock
}

func (m *FinanceRepoMock) ListFinance(ctx context.Context, kind models.FinanceKind, userID int64, filter models.FinanceFilter) ([]*models.FinanceRecord, error) {
	args := m.Called(ctx, kind, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FinanceRecord), args.Error(1)
}

func newCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	c, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestService_Summary(t *testing.T) {
	repo := new(FinanceRepoMock)
	c, mr := newCache(t)
	ctx := context.Background()

	incomes := []*models.FinanceRecord{
		rec(300000, day(2025, 1, 5), "Norte"),
		rec(100, day(2025, 2, 5), "Sur"),
	}
	expenses := []*models.FinanceRecord{
		rec(100000, day(2025, 1, 7), "Norte"),
		rec(200, day(2025, 2, 7), "Sur"),
	}
	repo.On("ListFinance", mock.Anything, models.KindIncome, int64(4), models.FinanceFilter{}).Return(incomes, nil).Once()
	repo.On("ListFinance", mock.Anything, models.KindExpense, int64(4), models.FinanceFilter{}).Return(expenses, nil).Once()

	svc := report.NewService(sl.Discard(), repo, c, 10*time.Minute)
	svc.SetNow(func() time.Time { return day(2025, 3, 1) })

	got, err := svc.Summary(ctx, 4, "desc")
	require.NoError(t, err)
	assert.True(t, got.Totales.IngresosTotales.Equal(decimal.NewFromInt(300100)))
	assert.Len(t, got.AnaliticasTemporales, 2)
	require.Len(t, got.RentabilidadParcelas, 2)
	assert.Equal(t, "Norte", got.RentabilidadParcelas[0].NombreParcela)
	assert.True(t, mr.Exists(report.SummaryKey(4)))

	// второй вызов обслуживается из кэша, порядок применяется заново
	got, err = svc.Summary(ctx, 4, "asc")
	require.NoError(t, err)
	assert.Equal(t, "Sur", got.RentabilidadParcelas[0].NombreParcela)
	assert.True(t, got.Totales.BalanceTotal.Equal(decimal.NewFromInt(199900)))

	repo.AssertExpectations(t)
}

func TestService_Summary_Expired(t *testing.T) {
	repo := new(FinanceRepoMock)
	c, mr := newCache(t)

	repo.On("ListFinance", mock.Anything, mock.Anything, int64(1), models.FinanceFilter{}).Return([]*models.FinanceRecord{}, nil).Times(4)

	svc := report.NewService(sl.Discard(), repo, c, time.Minute)
	_, err := svc.Summary(context.Background(), 1, "")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	got, err := svc.Summary(context.Background(), 1, "")
	require.NoError(t, err)
	assert.True(t, got.Totales.MargenPromedio.IsZero())
	repo.AssertExpectations(t)
}

func TestService_Summary_RepoError(t *testing.T) {
	repo := new(FinanceRepoMock)
	c, mr := newCache(t)
	dbErr := errors.New("db down")
	repo.On("ListFinance", mock.Anything, models.KindIncome, int64(2), models.FinanceFilter{}).Return(nil, dbErr).Once()

	svc := report.NewService(sl.Discard(), repo, c, time.Minute)
	_, err := svc.Summary(context.Background(), 2, "desc")

	assert.ErrorIs(t, err, dbErr)
	assert.False(t, mr.Exists(report.SummaryKey(2)))
}

func TestService_Summary_CacheDown(t *testing.T) {
	repo := new(FinanceRepoMock)
	c, mr := newCache(t)
	mr.Close()

	repo.On("ListFinance", mock.Anything, mock.Anything, int64(3), models.FinanceFilter{}).Return([]*models.FinanceRecord{}, nil).Twice()

	svc := report.NewService(sl.Discard(), repo, c, time.Minute)
	got, err := svc.Summary(context.Background(), 3, "desc")

	require.NoError(t, err)
	assert.NotNil(t, got)
	repo.AssertExpectations(t)
}
