// Package parcel управляет участками пользователя.
package parcel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
	"github.com/magabrotheeeer/greencontrol/internal/services/report"
)

// Repository хранилище участков.
type Repository interface {
	ListParcels(ctx context.Context, userID int64) ([]*models.Parcel, error)
	GetParcel(ctx context.Context, id, userID int64) (*models.Parcel, error)
	CreateParcel(ctx context.Context, p models.Parcel) (int64, error)
	UpdateParcel(ctx context.Context, p models.Parcel) error
	DeleteParcel(ctx context.Context, id, userID int64) error
}

// Cache сбрасывает сводку после изменения участков.
type Cache interface {
	Invalidate(ctx context.Context, key string) error
}

// Service бизнес-логика участков.
type Service struct {
	log   *slog.Logger
	repo  Repository
	cache Cache
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, repo Repository, cache Cache) *Service {
	return &Service{log: log, repo: repo, cache: cache}
}

// List возвращает все участки пользователя с текущей посадкой.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.Parcel, error) {
	const op = "parcel.List"
	parcels, err := s.repo.ListParcels(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return parcels, nil
}

// GetByID возвращает участок владельца.
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.Parcel, error) {
	const op = "parcel.GetByID"
	p, err := s.repo.GetParcel(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Create добавляет участок.
func (s *Service) Create(ctx context.Context, req models.ParcelRequest, userID int64) (*models.Parcel, error) {
	const op = "parcel.Create"
	if err := req.Validate(); err != nil {
		return nil, err
	}
	id, err := s.repo.CreateParcel(ctx, req.ToParcel(userID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetByID(ctx, id, userID)
}

// Update полностью заменяет поля участка.
func (s *Service) Update(ctx context.Context, id int64, req models.ParcelRequest, userID int64) (*models.Parcel, error) {
	const op = "parcel.Update"
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := req.ToParcel(userID)
	p.ID = id
	if err := s.repo.UpdateParcel(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// название участка входит в сводку
	s.invalidate(ctx, userID)
	return s.GetByID(ctx, id, userID)
}

// Delete удаляет участок. Посадка и задачи удаляются каскадом,
// финансовые записи становятся общими.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	const op = "parcel.Delete"
	if err := s.repo.DeleteParcel(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID int64) {
	if err := s.cache.Invalidate(ctx, report.SummaryKey(userID)); err != nil {
		s.log.Warn("failed to invalidate summary", slog.Int64("user_id", userID), sl.Err(err))
	}
}
