// Package cultivo содержит HTTP-обработчики справочника культур.
package cultivo

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

// Service описывает бизнес-логику культур.
type Service interface {
	List(ctx context.Context, userID int64) ([]*models.Crop, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Crop, error)
	Create(ctx context.Context, req models.CropRequest, userID int64) (*models.Crop, error)
	Update(ctx context.Context, id int64, req models.CropRequest, userID int64) (*models.Crop, error)
	Delete(ctx context.Context, id, userID int64) error
}

// Handler обрабатывает запросы /api/Cultivo.
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
// @Summary Список культур
// @Tags Cultivo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Crop}
// @Router /Cultivo [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cultivo.List"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	crops, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Cultivos obtenidos exitosamente", crops))
}

// Get godoc
// @Summary Культура по идентификатору
// @Tags Cultivo
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID культуры"
// @Success 200 {object} response.Response{data=models.Crop}
// @Failure 404 {object} response.ErrorResponse
// @Router /Cultivo/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cultivo.Get"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	crop, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Cultivo obtenido exitosamente", crop))
}

// Create godoc
// @Summary Создание культуры
// @Tags Cultivo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CropRequest true "Культура"
// @Success 201 {object} response.Response{data=models.Crop}
// @Failure 400 {object} response.ErrorResponse
// @Router /Cultivo [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cultivo.Create"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	var req models.CropRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	crop, err := h.service.Create(r.Context(), req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, response.OK("Cultivo creado exitosamente", crop))
}

// Update godoc
// @Summary Изменение культуры
// @Tags Cultivo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID культуры"
// @Param request body models.CropRequest true "Культура"
// @Success 200 {object} response.Response{data=models.Crop}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /Cultivo/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cultivo.Update"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	var req models.CropRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	crop, err := h.service.Update(r.Context(), id, req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Cultivo actualizado exitosamente", crop))
}

// Delete godoc
// @Summary Удаление культуры
// @Description Культуру, на которую ссылается посадка, удалить нельзя.
// @Tags Cultivo
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID культуры"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Культура используется в посадке"
// @Failure 404 {object} response.ErrorResponse
// @Router /Cultivo/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cultivo.Delete"
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
	response.JSON(w, r, http.StatusOK, response.OK("Cultivo eliminado exitosamente", nil))
}
