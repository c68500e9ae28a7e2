// Package n8n отдаёт ленту напоминаний для внешней автоматизации.
// Ответы не оборачиваются в конверт {mensaje, data}: клиент ждёт {"usuarios": [...]}.
package n8n

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/greencontrol/internal/http/request"
	"github.com/magabrotheeeer/greencontrol/internal/http/response"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Feed источник ленты напоминаний.
type Feed interface {
	Upcoming(ctx context.Context, days int) (*models.ReminderFeed, error)
	Range(ctx context.Context, from, to int) (*models.ReminderFeed, error)
	Today(ctx context.Context) (*models.ReminderFeed, error)
	Tomorrow(ctx context.Context) (*models.ReminderFeed, error)
	Overdue(ctx context.Context) (*models.ReminderFeed, error)
}

// Handler обрабатывает запросы /api/N8N.
type Handler struct {
	log  *slog.Logger
	feed Feed
}

// New создает новый Handler.
func New(log *slog.Logger, feed Feed) *Handler {
	return &Handler{log: log, feed: feed}
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, log *slog.Logger, feed *models.ReminderFeed, err error) {
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	log.Debug("reminder feed served", slog.Int("users", len(feed.Usuarios)))
	response.JSON(w, r, http.StatusOK, feed)
}

// Upcoming godoc
// @Summary Задачи через N дней
// @Tags N8N
// @Produce json
// @Param dias query int false "Смещение от сегодня в днях" default(1)
// @Success 200 {object} models.ReminderFeed
// @Failure 400 {object} response.ErrorResponse
// @Router /N8N/tareas [get]
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.n8n.Upcoming"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	days, err := request.QueryInt(r, "dias", 1)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	feed, err := h.feed.Upcoming(r.Context(), days)
	h.write(w, r, log, feed, err)
}

// Range godoc
// @Summary Задачи в диапазоне дней
// @Description Границы включительно, отсчёт от сегодняшнего дня. При hasta < desde лента пуста.
// @Tags N8N
// @Produce json
// @Param desde query int false "Начало диапазона" default(0)
// @Param hasta query int false "Конец диапазона" default(7)
// @Success 200 {object} models.ReminderFeed
// @Failure 400 {object} response.ErrorResponse
// @Router /N8N/tareas/rango [get]
func (h *Handler) Range(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.n8n.Range"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	from, err := request.QueryInt(r, "desde", 0)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	to, err := request.QueryInt(r, "hasta", 7)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	feed, err := h.feed.Range(r.Context(), from, to)
	h.write(w, r, log, feed, err)
}

// Overdue godoc
// @Summary Просроченные задачи
// @Tags N8N
// @Produce json
// @Success 200 {object} models.ReminderFeed
// @Router /N8N/tareas/vencidas [get]
func (h *Handler) Overdue(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.n8n.Overdue"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	feed, err := h.feed.Overdue(r.Context())
	h.write(w, r, log, feed, err)
}

// Today godoc
// @Summary Задачи на сегодня
// @Tags N8N
// @Produce json
// @Success 200 {object} models.ReminderFeed
// @Router /N8N/tareas/hoy [get]
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.n8n.Today"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	feed, err := h.feed.Today(r.Context())
	h.write(w, r, log, feed, err)
}

// Tomorrow godoc
// @Summary Задачи на завтра
// @Tags N8N
// @Produce json
// @Success 200 {object} models.ReminderFeed
// @Router /N8N/tareas/manana [get]
func (h *Handler) Tomorrow(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.n8n.Tomorrow"
	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))

	feed, err := h.feed.Tomorrow(r.Context())
	h.write(w, r, log, feed, err)
}
