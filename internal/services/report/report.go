// Package report собирает бухгалтерскую сводку пользователя: итоги,
// помесячную динамику и доходность участков.
//
// Сводка кэшируется в Redis. Любая запись в доходы, расходы или участки
// сбрасывает ключ SummaryKey.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// FinanceRepository источник финансовых записей.
type FinanceRepository interface {
	ListFinance(ctx context.Context, kind models.FinanceKind, userID int64, filter models.FinanceFilter) ([]*models.FinanceRecord, error)
}

// Cache хранилище готовых сводок.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service строит сводку.
type Service struct {
	log   *slog.Logger
	repo  FinanceRepository
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, repo FinanceRepository, cache Cache, ttl time.Duration) *Service {
	return &Service{
		log:   log,
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

// SummaryKey ключ кэша сводки пользователя.
func SummaryKey(userID int64) string {
	return "report:summary:" + strconv.FormatInt(userID, 10)
}

// Summary возвращает сводку. order "asc" сортирует участки по возрастанию маржи,
// любое другое значение по убыванию.
func (s *Service) Summary(ctx context.Context, userID int64, order string) (*models.AccountingSummary, error) {
	const op = "report.Summary"
	log := s.log.With(slog.String("op", op), slog.Int64("user_id", userID))

	key := SummaryKey(userID)
	var summary models.AccountingSummary
	found, err := s.cache.Get(ctx, key, &summary)
	if err != nil {
		log.Warn("cache read failed", sl.Err(err))
	}
	if !found {
		built, err := s.build(ctx, log, userID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		summary = *built
		if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
			log.Warn("cache write failed", sl.Err(err))
		}
	}

	SortByMargin(summary.RentabilidadParcelas, strings.EqualFold(order, "asc"))
	return &summary, nil
}

func (s *Service) build(ctx context.Context, log *slog.Logger, userID int64) (*models.AccountingSummary, error) {
	incomes, err := s.repo.ListFinance(ctx, models.KindIncome, userID, models.FinanceFilter{})
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListFinance(ctx, models.KindExpense, userID, models.FinanceFilter{})
	if err != nil {
		return nil, err
	}

	monthly, coerced := Monthly(incomes, expenses, s.now())
	if coerced > 0 {
		log.Warn("records without date counted in current month", slog.Int("count", coerced))
	}

	return &models.AccountingSummary{
		Totales:              Totals(incomes, expenses),
		AnaliticasTemporales: monthly,
		RentabilidadParcelas: ByParcel(incomes, expenses),
	}, nil
}
