// Package parcela содержит HTTP-обработчики участков пользователя.
package parcela

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

// Service описывает бизнес-логику участков.
type Service interface {
	List(ctx context.Context, userID int64) ([]*models.Parcel, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Parcel, error)
	Create(ctx context.Context, req models.ParcelRequest, userID int64) (*models.Parcel, error)
	Update(ctx context.Context, id int64, req models.ParcelRequest, userID int64) (*models.Parcel, error)
	Delete(ctx context.Context, id, userID int64) error
}

// Handler обрабатывает запросы /api/Parcela.
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

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary Список участков
// @Description Возвращает участки текущего пользователя вместе с активной посадкой.
// @Tags Parcela
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Parcel}
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /Parcela [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.parcela.List")

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	parcels, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Parcelas obtenidas exitosamente", parcels))
}

// Get godoc
// @Summary Участок по идентификатору
// @Tags Parcela
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID участка"
// @Success 200 {object} response.Response{data=models.Parcel}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Участок не найден или принадлежит другому пользователю"
// @Router /Parcela/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.parcela.Get")

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	parcel, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Parcela obtenida exitosamente", parcel))
}

// Create godoc
// @Summary Создание участка
// @Tags Parcela
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ParcelRequest true "Данные участка"
// @Success 201 {object} response.Response{data=models.Parcel}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /Parcela [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.parcela.Create")

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	var req models.ParcelRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	parcel, err := h.service.Create(r.Context(), req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("parcel created", slog.Int64("parcel_id", parcel.ID))
	response.JSON(w, r, http.StatusCreated, response.OK("Parcela creada exitosamente", parcel))
}

// Update godoc
// @Summary Полная замена участка
// @Tags Parcela
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID участка"
// @Param request body models.ParcelRequest true "Данные участка"
// @Success 200 {object} response.Response{data=models.Parcel}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /Parcela/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.parcela.Update")

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	var req models.ParcelRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	parcel, err := h.service.Update(r.Context(), id, req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Parcela actualizada exitosamente", parcel))
}

// Delete godoc
// @Summary Удаление участка
// @Description Удаляет участок вместе с посадкой и задачами.
// @Tags Parcela
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID участка"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /Parcela/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.parcela.Delete")

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
	log.Info("parcel deleted", slog.Int64("parcel_id", id))
	response.JSON(w, r, http.StatusOK, response.OK("Parcela eliminada exitosamente", nil))
}
