// Package finance ведёт расходы и доходы. Оба вида записей обслуживает
// одна реализация, параметризованная models.FinanceKind.
package finance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/greencontrol/internal/lib/dates"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
	"github.com/magabrotheeeer/greencontrol/internal/services/report"
)

// Repository хранилище финансовых записей.
type Repository interface {
	ListFinance(ctx context.Context, kind models.FinanceKind, userID int64, filter models.FinanceFilter) ([]*models.FinanceRecord, error)
	GetFinance(ctx context.Context, kind models.FinanceKind, id, userID int64) (*models.FinanceRecord, error)
	CreateFinance(ctx context.Context, kind models.FinanceKind, r models.FinanceRecord) (int64, error)
	UpdateFinance(ctx context.Context, kind models.FinanceKind, r models.FinanceRecord) error
	DeleteFinance(ctx context.Context, kind models.FinanceKind, id, userID int64) error
	ParcelName(ctx context.Context, id, userID int64) (string, error)
}

// Cache сбрасывает сводку после изменений.
type Cache interface {
	Invalidate(ctx context.Context, key string) error
}

// Service бизнес-логика расходов и доходов.
type Service struct {
	log   *slog.Logger
	repo  Repository
	cache Cache
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, repo Repository, cache Cache) *Service {
	return &Service{log: log, repo: repo, cache: cache}
}

// List возвращает записи по фильтру, новые первыми.
func (s *Service) List(ctx context.Context, kind models.FinanceKind, userID int64, filter models.FinanceFilter) ([]*models.FinanceRecord, error) {
	const op = "finance.List"
	list, err := s.repo.ListFinance(ctx, kind, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *Service) GetByID(ctx context.Context, kind models.FinanceKind, id, userID int64) (*models.FinanceRecord, error) {
	const op = "finance.GetByID"
	r, err := s.repo.GetFinance(ctx, kind, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

func (s *Service) Create(ctx context.Context, kind models.FinanceKind, req models.FinanceRequest, userID int64) (*models.FinanceRecord, error) {
	const op = "finance.Create"

	rec, err := s.record(ctx, req, userID)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.CreateFinance(ctx, kind, rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, userID)
	return s.GetByID(ctx, kind, id, userID)
}

// Update полностью заменяет запись. Отсутствующий parcelaId делает запись общей.
func (s *Service) Update(ctx context.Context, kind models.FinanceKind, id int64, req models.FinanceRequest, userID int64) (*models.FinanceRecord, error) {
	const op = "finance.Update"

	rec, err := s.record(ctx, req, userID)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	if err := s.repo.UpdateFinance(ctx, kind, rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, userID)
	return s.GetByID(ctx, kind, id, userID)
}

func (s *Service) Delete(ctx context.Context, kind models.FinanceKind, id, userID int64) error {
	const op = "finance.Delete"
	if err := s.repo.DeleteFinance(ctx, kind, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, userID)
	return nil
}

// record проверяет запрос и принадлежность участка.
func (s *Service) record(ctx context.Context, req models.FinanceRequest, userID int64) (models.FinanceRecord, error) {
	const op = "finance.record"

	if err := req.Validate(); err != nil {
		return models.FinanceRecord{}, err
	}
	fecha, err := dates.Parse(req.Fecha)
	if err != nil {
		return models.FinanceRecord{}, models.BadDate("fecha")
	}
	if req.ParcelaID != nil {
		if _, err := s.repo.ParcelName(ctx, *req.ParcelaID, userID); err != nil {
			return models.FinanceRecord{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	return models.FinanceRecord{
		Fecha:         fecha,
		Monto:         req.Monto,
		Concepto:      req.Concepto,
		NotaAdicional: req.NotaAdicional,
		ParcelaID:     req.ParcelaID,
		EsGeneral:     req.ParcelaID == nil,
		UsuarioID:     userID,
	}, nil
}

func (s *Service) invalidate(ctx context.Context, userID int64) {
	if err := s.cache.Invalidate(ctx, report.SummaryKey(userID)); err != nil {
		s.log.Warn("failed to invalidate summary", slog.Int64("user_id", userID), sl.Err(err))
	}
}
