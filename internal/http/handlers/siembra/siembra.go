// Package siembra содержит HTTP-обработчики посадок.
//
// На участке может быть не больше одной посадки. Повторное создание
// отклоняется с 400, даже если прежняя посадка уже завершена: её нужно
// обновить через PUT.
package siembra

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

// Service описывает бизнес-логику посадок.
type Service interface {
	List(ctx context.Context, userID int64) ([]*models.Planting, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Planting, error)
	Create(ctx context.Context, req models.PlantingRequest, userID int64) (*models.Planting, error)
	Update(ctx context.Context, id int64, req models.PlantingUpdate, userID int64) (*models.Planting, error)
	Delete(ctx context.Context, id, userID int64) error
}

// Handler обрабатывает запросы /api/Siembra.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: response.NewValidator()}
}

// List godoc
// @Summary Список посадок
// @Tags Siembra
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Planting}
// @Router /Siembra [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.siembra.List"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	plantings, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Siembras obtenidas exitosamente", plantings))
}

// Get godoc
// @Summary Посадка по идентификатору
// @Tags Siembra
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID посадки"
// @Success 200 {object} response.Response{data=models.Planting}
// @Failure 404 {object} response.ErrorResponse
// @Router /Siembra/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.siembra.Get"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	planting, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Siembra obtenida exitosamente", planting))
}

// Create godoc
// @Summary Создание посадки
// @Description Даты принимаются в ISO-8601. Участок и культура должны принадлежать пользователю.
// @Tags Siembra
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PlantingRequest true "Посадка"
// @Success 201 {object} response.Response{data=models.Planting}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или на участке уже есть посадка"
// @Failure 404 {object} response.ErrorResponse "Участок или культура не найдены"
// @Router /Siembra [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.siembra.Create"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	var req models.PlantingRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	planting, err := h.service.Create(r.Context(), req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("planting created", slog.Int64("planting_id", planting.ID), slog.Int64("parcel_id", planting.ParcelaID))
	response.JSON(w, r, http.StatusCreated, response.OK("Siembra creada exitosamente", planting))
}

// Update godoc
// @Summary Изменение дат посадки
// @Description Заменяет fechaFinal, fechaGerminacion и fechaFloracion. Отсутствующее поле очищается.
// @Tags Siembra
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID посадки"
// @Param request body models.PlantingUpdate true "Даты"
// @Success 200 {object} response.Response{data=models.Planting}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /Siembra/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.siembra.Update"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	var req models.PlantingUpdate
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	planting, err := h.service.Update(r.Context(), id, req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Siembra actualizada exitosamente", planting))
}

// Delete godoc
// @Summary Удаление посадки
// @Tags Siembra
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID посадки"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /Siembra/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.siembra.Delete"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Siembra eliminada exitosamente", nil))
}
