// Package finanzas содержит HTTP-обработчики расходов (/api/Gasto) и доходов
// (/api/Ingreso). Оба ресурса обслуживает один Handler, параметризованный видом записи.
package finanzas

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

// Service описывает бизнес-логику финансовых записей.
type Service interface {
	List(ctx context.Context, kind models.FinanceKind, userID int64, filter models.FinanceFilter) ([]*models.FinanceRecord, error)
	GetByID(ctx context.Context, kind models.FinanceKind, id, userID int64) (*models.FinanceRecord, error)
	Create(ctx context.Context, kind models.FinanceKind, req models.FinanceRequest, userID int64) (*models.FinanceRecord, error)
	Update(ctx context.Context, kind models.FinanceKind, id int64, req models.FinanceRequest, userID int64) (*models.FinanceRecord, error)
	Delete(ctx context.Context, kind models.FinanceKind, id, userID int64) error
}

type messages struct {
	list, get, created, updated, deleted string
}

var kindMessages = map[models.FinanceKind]messages{
	models.KindExpense: {
		list:    "Gastos obtenidos exitosamente",
		get:     "Gasto obtenido exitosamente",
		created: "Gasto creado exitosamente",
		updated: "Gasto actualizado exitosamente",
		deleted: "Gasto eliminado exitosamente",
	},
	models.KindIncome: {
		list:    "Ingresos obtenidos exitosamente",
		get:     "Ingreso obtenido exitosamente",
		created: "Ingreso creado exitosamente",
		updated: "Ingreso actualizado exitosamente",
		deleted: "Ingreso eliminado exitosamente",
	},
}

// Handler обрабатывает запросы одного вида финансовых записей.
type Handler struct {
	log      *slog.Logger
	service  Service
	kind     models.FinanceKind
	msg      messages
	validate *validator.Validate
}

// New создает Handler для вида kind (models.KindExpense или models.KindIncome).
func New(log *slog.Logger, service Service, kind models.FinanceKind) *Handler {
	return &Handler{
		log:      log.With(slog.String("kind", string(kind))),
		service:  service,
		kind:     kind,
		msg:      kindMessages[kind],
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
// @Summary Список расходов или доходов
// @Description tipo=general оставляет записи без участка, tipo=parcela только привязанные.
// @Description parcelaId фильтрует по участку и применяется после tipo.
// @Tags Finanzas
// @Produce json
// @Security BearerAuth
// @Param tipo query string false "general | parcela"
// @Param parcelaId query int false "ID участка"
// @Success 200 {object} response.Response{data=[]models.FinanceRecord}
// @Failure 400 {object} response.ErrorResponse
// @Router /Gasto [get]
// @Router /Ingreso [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.finanzas.List")

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	parcelID, err := request.QueryInt64Ptr(r, "parcelaId")
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	filter := models.FinanceFilter{
		Tipo:      r.URL.Query().Get("tipo"),
		ParcelaID: parcelID,
	}

	records, err := h.service.List(r.Context(), h.kind, userID, filter)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK(h.msg.list, records))
}

// Get godoc
// @Summary Запись по идентификатору
// @Tags Finanzas
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response{data=models.FinanceRecord}
// @Failure 404 {object} response.ErrorResponse
// @Router /Gasto/{id} [get]
// @Router /Ingreso/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.finanzas.Get")

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	record, err := h.service.GetByID(r.Context(), h.kind, id, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK(h.msg.get, record))
}

// Create godoc
// @Summary Создание записи
// @Description Без parcelaId запись считается общей.
// @Tags Finanzas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.FinanceRequest true "Запись"
// @Success 201 {object} response.Response{data=models.FinanceRecord}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Участок не найден"
// @Router /Gasto [post]
// @Router /Ingreso [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.finanzas.Create")

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	var req models.FinanceRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	record, err := h.service.Create(r.Context(), h.kind, req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Info("finance record created", slog.Int64("record_id", record.ID))
	response.JSON(w, r, http.StatusCreated, response.OK(h.msg.created, record))
}

// Update godoc
// @Summary Замена записи
// @Tags Finanzas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Param request body models.FinanceRequest true "Запись"
// @Success 200 {object} response.Response{data=models.FinanceRecord}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /Gasto/{id} [put]
// @Router /Ingreso/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.finanzas.Update")

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	var req models.FinanceRequest
	if err := response.Bind(r, h.validate, &req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	record, err := h.service.Update(r.Context(), h.kind, id, req, userID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK(h.msg.updated, record))
}

// Delete godoc
// @Summary Удаление записи
// @Tags Finanzas
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /Gasto/{id} [delete]
// @Router /Ingreso/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.finanzas.Delete")

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	id, ok := request.ID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), h.kind, id, userID); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK(h.msg.deleted, nil))
}
