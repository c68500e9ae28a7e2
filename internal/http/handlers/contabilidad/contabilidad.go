// Package contabilidad отдаёт бухгалтерскую сводку пользователя.
package contabilidad

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/greencontrol/internal/http/request"
	"github.com/magabrotheeeer/greencontrol/internal/http/response"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Service строит сводку.
type Service interface {
	Summary(ctx context.Context, userID int64, order string) (*models.AccountingSummary, error)
}

// Handler обрабатывает запросы /api/Contabilidad.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Summary godoc
// @Summary Бухгалтерская сводка
// @Description Итоги, помесячная динамика и доходность участков.
// @Description orden сортирует участки по марже, по умолчанию desc.
// @Tags Contabilidad
// @Produce json
// @Security BearerAuth
// @Param orden query string false "asc | desc"
// @Success 200 {object} response.Response{data=models.AccountingSummary}
// @Failure 400 {object} response.ErrorResponse
// @Router /Contabilidad/resumen [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contabilidad.Summary"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	userID, ok := request.UserID(w, r, log)
	if !ok {
		return
	}
	order := strings.ToLower(r.URL.Query().Get("orden"))
	switch order {
	case "":
		order = "desc"
	case "asc", "desc":
	default:
		response.Fail(w, r, log, models.Invalid("El parámetro orden debe ser asc o desc"))
		return
	}

	summary, err := h.service.Summary(r.Context(), userID, order)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, response.OK("Resumen contable obtenido exitosamente", summary))
}
