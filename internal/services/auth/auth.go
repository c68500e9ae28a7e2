// Package auth содержит регистрацию, вход и проверку токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/greencontrol/internal/lib/jwt"
	"github.com/magabrotheeeer/greencontrol/internal/lib/password"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	EmailExists(ctx context.Context, correo string) (bool, error)
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetUserByEmail(ctx context.Context, correo string) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	log      *slog.Logger
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewService создает новый экземпляр Service.
func NewService(log *slog.Logger, users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		log:      log,
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает пользователя и сразу выдает токен.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	const op = "auth.Register"

	correo := strings.TrimSpace(req.Correo)
	exists, err := s.users.EmailExists(ctx, correo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, models.ErrDuplicateEmail
	}

	hashed, err := password.GetHash(req.Contrasena)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Telefono:     req.Telefono,
		Correo:       correo,
		PasswordHash: hashed,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		// гонка двух регистраций ловится уникальным индексом
		if errors.Is(err, models.ErrDuplicateEmail) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = id

	s.log.Info("user registered", slog.Int64("user_id", id))
	return s.issue(op, &user)
}

// Login проверяет пароль и выдает токен. Неизвестная почта и неверный пароль
// неразличимы для клиента.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(req.Correo))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, req.Contrasena); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.issue(op, user)
}

// ValidateToken разбирает токен и возвращает его claims.
func (s *Service) ValidateToken(token string) (*jwt.Claims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, models.ErrUnauthenticated
	}
	return claims, nil
}

func (s *Service) issue(op string, user *models.User) (*models.AuthResult, error) {
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Correo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.AuthResult{
		ID:       user.ID,
		Nombre:   user.Nombre,
		Apellido: user.Apellido,
		Correo:   user.Correo,
		Token:    token,
	}, nil
}
