// Package notificacion содержит HTTP-обработчики уведомлений.
// Create открыт: его вызывает внешняя автоматизация без токена пользователя.
package notificacion

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

// Service описывает бизнес-логику уведомлений.
type Service interface {
	Create(ctx context.Context, req models.NotificationRequest) (*models.Notification, error)
	List(ctx context.Context, userID int64) ([]*models.Notification, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (*models.Notification, error)
}

// Handler обрабатывает запросы /api/Notificacion.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: response.NewValidator()}
}

// Create godoc
// @Summary Создание уведомления
// @Description Открытый метод для автоматизации напоминаний.
// @Tags Notificacion
// @Accept json
// @Produce json
// @Param request body models.NotificationRequest true "Уведомление"
// @Success 201 {object} response.Response{data=models.Notification}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /Notificacion [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notificacion.Create"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	var req models.NotificationRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	n, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("notification created", slog.Int64("notification_id", n.ID), slog.Int64("user_id", req.UsuarioID))
	response.JSON(w, r, http.StatusCreated, response.OK("Notificación creada exitosamente", n))
}

// List godoc
// @Summary Уведомления пользователя
// @Description Сначала новые.
// @Tags Notificacion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Notification}
// @Router /Notificacion [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notificacion.List"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	list, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Notificaciones obtenidas exitosamente", list))
}

// Get godoc
// @Summary Уведомление по идентификатору
// @Tags Notificacion
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID уведомления"
// @Success 200 {object} response.Response{data=models.Notification}
// @Failure 404 {object} response.ErrorResponse
// @Router /Notificacion/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notificacion.Get"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	n, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Notificación obtenida exitosamente", n))
}

// MarkRead godoc
// @Summary Отметить уведомление прочитанным
// @Tags Notificacion
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID уведомления"
// @Success 200 {object} response.Response{data=models.Notification}
// @Failure 404 {object} response.ErrorResponse
// @Router /Notificacion/{id}/marcar-leida [put]
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notificacion.MarkRead"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	n, err := h.service.MarkRead(r.Context(), id, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Notificación marcada como leída", n))
}
