// Package auth реализует открытые HTTP-обработчики регистрации и входа.
package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/greencontrol/internal/http/response"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error)
}

// Handler обрабатывает запросы /api/Auth.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя и сразу возвращает токен сессии.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Данные пользователя"
// @Success 200 {object} response.Response{data=models.AuthResult}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или почта уже занята"
// @Failure 500 {object} response.ErrorResponse
// @Router /Auth/registro [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.Register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("user registered", slog.Int64("user_id", res.ID))
	response.JSON(w, r, http.StatusOK, response.OK("Usuario registrado exitosamente", res))
}

// Login godoc
// @Summary Вход пользователя
// @Description Проверяет почту и пароль, возвращает токен сессии.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Почта и пароль"
// @Success 200 {object} response.Response{data=models.AuthResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse "Неверная почта или пароль"
// @Failure 500 {object} response.ErrorResponse
// @Router /Auth/inicio-sesion [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.Login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("user logged in", slog.Int64("user_id", res.ID))
	response.JSON(w, r, http.StatusOK, response.OK("Inicio de sesión exitoso", res))
}
