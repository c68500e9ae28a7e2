// Package health отдаёт состояние сервиса по HTTP для балансировщика.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/greencontrol/internal/http/response"
)

// Checker опрашивает зависимости, ключ результата имя упавшей проверки.
type Checker interface {
	Check(ctx context.Context) map[string]error
}

// Status тело ответа.
type Status struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler обрабатывает GET /health.
type Handler struct {
	log     *slog.Logger
	checker Checker
}

// New создает новый Handler.
func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{log: log, checker: checker}
}

// ServeHTTP godoc
// @Summary Состояние сервиса
// @Tags ops
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} Status
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	failed := h.checker.Check(r.Context())
	if len(failed) == 0 {
		response.JSON(w, r, http.StatusOK, Status{Status: "ok"})
		return
	}

	checks := make(map[string]string, len(failed))
	for name, err := range failed {
		checks[name] = err.Error()
	}
	h.log.Warn("service unhealthy", slog.String("op", op), slog.Any("checks", checks))
	response.JSON(w, r, http.StatusServiceUnavailable, Status{Status: "unavailable", Checks: checks})
}
