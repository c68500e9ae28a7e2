// Package user работает с профилем текущего пользователя.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/greencontrol/internal/lib/password"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Repository хранилище пользователей.
type Repository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id int64, req models.ProfileRequest) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
}

// Service бизнес-логика профиля.
type Service struct {
	log  *slog.Logger
	repo Repository
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	const op = "user.GetProfile"
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u.ToProfile(), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req models.ProfileRequest) (*models.Profile, error) {
	const op = "user.UpdateProfile"
	u, err := s.repo.UpdateUserProfile(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u.ToProfile(), nil
}

// ChangePassword меняет пароль после проверки текущего.
func (s *Service) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	const op = "user.ChangePassword"

	if req.NuevaContrasena != req.ConfirmarContrasena {
		return models.Invalid("Las contraseñas no coinciden")
	}

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(u.PasswordHash, req.ContrasenaActual); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return models.ErrWrongPassword
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(req.NuevaContrasena)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdateUserPassword(ctx, userID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("password changed", slog.Int64("user_id", userID))
	return nil
}
