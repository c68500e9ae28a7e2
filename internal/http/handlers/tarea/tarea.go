// Package tarea содержит HTTP-обработчики задач на участках.
package tarea

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

// Service описывает бизнес-логику задач.
type Service interface {
	List(ctx context.Context, userID int64) ([]*models.Task, error)
	ListByParcel(ctx context.Context, parcelID, userID int64) ([]*models.Task, error)
	GetByID(ctx context.Context, id, userID int64) (*models.Task, error)
	Create(ctx context.Context, req models.TaskRequest, userID int64) (*models.Task, error)
	Update(ctx context.Context, id int64, req models.TaskUpdate, userID int64) (*models.Task, error)
	MarkCompleted(ctx context.Context, id, userID int64) (*models.Task, error)
	Delete(ctx context.Context, id, userID int64) error
}

// Handler обрабатывает запросы /api/Tarea.
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
// @Summary Список задач
// @Description Задачи по всем участкам пользователя, по дате выполнения.
// @Tags Tarea
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Task}
// @Router /Tarea [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tarea.List"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	tasks, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Tareas obtenidas exitosamente", tasks))
}

// ListByParcel godoc
// @Summary Задачи участка
// @Description Для чужого или несуществующего участка возвращается пустой список.
// @Tags Tarea
// @Produce json
// @Security BearerAuth
// @Param parcelaId path int true "ID участка"
// @Success 200 {object} response.Response{data=[]models.Task}
// @Router /Tarea/parcela/{parcelaId} [get]
func (h *Handler) ListByParcel(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tarea.ListByParcel"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	parcelID, ok := request.ID(w, r, "parcelaId")
	if !ok {
		return
	}
	tasks, err := h.service.ListByParcel(r.Context(), parcelID, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Tareas obtenidas exitosamente", tasks))
}

// Get godoc
// @Summary Задача по идентификатору
// @Tags Tarea
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID задачи"
// @Success 200 {object} response.Response{data=models.Task}
// @Failure 404 {object} response.ErrorResponse
// @Router /Tarea/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tarea.Get"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	task, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Tarea obtenida exitosamente", task))
}

// Create godoc
// @Summary Создание задачи
// @Tags Tarea
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.TaskRequest true "Задача"
// @Success 201 {object} response.Response{data=models.Task}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Участок не найден"
// @Router /Tarea [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tarea.Create"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	var req models.TaskRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	task, err := h.service.Create(r.Context(), req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("task created", slog.Int64("task_id", task.ID))
	response.JSON(w, r, http.StatusCreated, response.OK("Tarea creada exitosamente", task))
}

// Update godoc
// @Summary Частичное изменение задачи
// @Description Меняются только переданные поля. fechaFinalizacion: null снимает отметку о выполнении.
// @Tags Tarea
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID задачи"
// @Param request body models.TaskUpdate true "Изменяемые поля задачи"
// @Success 200 {object} response.Response{data=models.Task}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /Tarea/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tarea.Update"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	var req models.TaskUpdate
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	task, err := h.service.Update(r.Context(), id, req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Tarea actualizada exitosamente", task))
}

// Complete godoc
// @Summary Отметить задачу выполненной
// @Tags Tarea
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID задачи"
// @Success 200 {object} response.Response{data=models.Task}
// @Failure 404 {object} response.ErrorResponse
// @Router /Tarea/{id}/completar [put]
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tarea.Complete"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	task, err := h.service.MarkCompleted(r.Context(), id, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Tarea marcada como completada", task))
}

// Delete godoc
// @Summary Удаление задачи
// @Tags Tarea
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID задачи"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /Tarea/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tarea.Delete"
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
	response.JSON(w, r, http.StatusOK, response.OK("Tarea eliminada exitosamente", nil))
}
