// Package crop управляет справочником культур пользователя.
package crop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Repository хранилище культур.
type Repository interface {
	ListCrops(ctx context.Context, userID int64) ([]*models.Crop, error)
	GetCrop(ctx context.Context, id, userID int64) (*models.Crop, error)
	CreateCrop(ctx context.Context, c models.Crop) (int64, error)
	UpdateCrop(ctx context.Context, c models.Crop) error
	DeleteCrop(ctx context.Context, id, userID int64) error
}

// Service бизнес-логика культур.
type Service struct {
	log  *slog.Logger
	repo Repository
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*models.Crop, error) {
	const op = "crop.List"
	crops, err := s.repo.ListCrops(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return crops, nil
}

func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.Crop, error) {
	const op = "crop.GetByID"
	c, err := s.repo.GetCrop(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, req models.CropRequest, userID int64) (*models.Crop, error) {
	const op = "crop.Create"
	c := models.Crop{Nombre: req.Nombre, Especie: req.Especie, UsuarioID: userID}
	id, err := s.repo.CreateCrop(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.ID = id
	return &c, nil
}

func (s *Service) Update(ctx context.Context, id int64, req models.CropRequest, userID int64) (*models.Crop, error) {
	const op = "crop.Update"
	c := models.Crop{ID: id, Nombre: req.Nombre, Especie: req.Especie, UsuarioID: userID}
	if err := s.repo.UpdateCrop(ctx, c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// Delete удаляет культуру. Культура, на которую ссылается посадка, не удаляется: ErrCropInUse.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	const op = "crop.Delete"
	if err := s.repo.DeleteCrop(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
