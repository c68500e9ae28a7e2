// Package planting ведёт посадки культур на участках.
//
// На участке может быть не больше одной посадки. Создание выполняется в одной
// транзакции с блокировкой строки участка, поэтому две параллельные попытки
// не создадут вторую активную посадку.
package planting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/greencontrol/internal/lib/dates"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Repository хранилище посадок и связанных сущностей.
type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockParcel(ctx context.Context, id, userID int64) (string, error)
	PlantingByParcel(ctx context.Context, parcelID int64) (*models.Planting, error)
	GetCrop(ctx context.Context, id, userID int64) (*models.Crop, error)
	CreatePlanting(ctx context.Context, parcelID, cropID int64, d models.PlantingDates) (int64, error)
	ListPlantings(ctx context.Context, userID int64) ([]*models.Planting, error)
	GetPlanting(ctx context.Context, id, userID int64) (*models.Planting, error)
	UpdatePlantingDates(ctx context.Context, id, userID int64, d models.PlantingDates) error
	DeletePlanting(ctx context.Context, id, userID int64) error
}

// Service бизнес-логика посадок.
type Service struct {
	log  *slog.Logger
	repo Repository
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*models.Planting, error) {
	const op = "planting.List"
	list, err := s.repo.ListPlantings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.Planting, error) {
	const op = "planting.GetByID"
	p, err := s.repo.GetPlanting(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Create начинает посадку. Проверки идут в порядке: участок, активная посадка, культура.
func (s *Service) Create(ctx context.Context, req models.PlantingRequest, userID int64) (*models.Planting, error) {
	const op = "planting.Create"

	d, err := parseCreateDates(req)
	if err != nil {
		return nil, err
	}

	var id int64
	err = s.repo.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.LockParcel(ctx, req.ParcelaID, userID); err != nil {
			return err
		}

		existing, err := s.repo.PlantingByParcel(ctx, req.ParcelaID)
		switch {
		case err == nil && existing.IsActive():
			return models.ErrConflictActivePlanting
		case err == nil:
			return models.ErrParcelHasPlanting
		case !errors.Is(err, models.ErrPlantingNotFound):
			return err
		}

		if _, err := s.repo.GetCrop(ctx, req.CultivoID, userID); err != nil {
			return err
		}

		id, err = s.repo.CreatePlanting(ctx, req.ParcelaID, req.CultivoID, d)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("planting started",
		slog.Int64("planting_id", id),
		slog.Int64("parcel_id", req.ParcelaID),
		slog.Int64("user_id", userID))
	return s.GetByID(ctx, id, userID)
}

// Update заменяет дату окончания, прорастания и цветения. Отсутствующая дата очищается.
func (s *Service) Update(ctx context.Context, id int64, req models.PlantingUpdate, userID int64) (*models.Planting, error) {
	const op = "planting.Update"

	var (
		d   models.PlantingDates
		err error
	)
	if d.FechaFinal, err = dates.ParseOptional(req.FechaFinal); err != nil {
		return nil, models.BadDate("fechaFinal")
	}
	if d.FechaGerminacion, err = dates.ParseOptional(req.FechaGerminacion); err != nil {
		return nil, models.BadDate("fechaGerminacion")
	}
	if d.FechaFloracion, err = dates.ParseOptional(req.FechaFloracion); err != nil {
		return nil, models.BadDate("fechaFloracion")
	}

	// TODO: reject fechaFinal before fechaInicio once existing rows are checked for it
	if err := s.repo.UpdatePlantingDates(ctx, id, userID, d); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetByID(ctx, id, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	const op = "planting.Delete"
	if err := s.repo.DeletePlanting(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func parseCreateDates(req models.PlantingRequest) (models.PlantingDates, error) {
	var (
		d   models.PlantingDates
		err error
	)
	if d.FechaInicio, err = dates.Parse(req.FechaInicio); err != nil {
		return d, models.BadDate("fechaInicio")
	}
	if d.FechaGerminacion, err = dates.ParseOptional(req.FechaGerminacion); err != nil {
		return d, models.BadDate("fechaGerminacion")
	}
	if d.FechaFloracion, err = dates.ParseOptional(req.FechaFloracion); err != nil {
		return d, models.BadDate("fechaFloracion")
	}
	return d, nil
}
