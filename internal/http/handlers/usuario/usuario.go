// Package usuario содержит HTTP-обработчики профиля текущего пользователя.
package usuario

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/greencontrol/internal/http/request"
	"github.com/magabrotheeeer/greencontrol/internal/http/response"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Service описывает бизнес-логику профиля.
type Service interface {
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req models.ProfileRequest) (*models.Profile, error)
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
}

// Handler обрабатывает запросы /api/Usuario.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: response.NewValidator()}
}

// Profile godoc
// @Summary Профиль пользователя
// @Tags Usuario
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.Profile}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /Usuario/perfil [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usuario.Profile"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Perfil obtenido exitosamente", profile))
}

// UpdateProfile godoc
// @Summary Изменение профиля
// @Description Почту изменить нельзя.
// @Tags Usuario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ProfileRequest true "Профиль"
// @Success 200 {object} response.Response{data=models.Profile}
// @Failure 400 {object} response.ErrorResponse
// @Router /Usuario/perfil [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usuario.UpdateProfile"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	var req models.ProfileRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	profile, err := h.service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Perfil actualizado exitosamente", profile))
}

// ChangePassword godoc
// @Summary Смена пароля
// @Tags Usuario
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ChangePasswordRequest true "Пароли"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Пароли не совпадают"
// @Failure 401 {object} response.ErrorResponse "Неверный текущий пароль"
// @Router /Usuario/cambiar-contrasena [put]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usuario.ChangePassword"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	if err := h.service.ChangePassword(r.Context(), userID, req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("password changed", slog.Int64("user_id", userID))
	response.JSON(w, r, http.StatusOK, response.OK("Contraseña cambiada exitosamente", nil))
}
