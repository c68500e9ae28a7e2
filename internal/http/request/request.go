// Package request извлекает из HTTP-запроса идентификаторы пути, параметры
// строки запроса и текущего пользователя.
package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/greencontrol/internal/http/middlewarectx"
	"github.com/magabrotheeeer/greencontrol/internal/http/response"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// UserID возвращает пользователя из контекста. Без него отвечает 401.
func UserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	id, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, models.ErrUnauthenticated)
		return 0, false
	}
	return id, true
}

// ID разбирает положительный целый параметр пути key. При ошибке отвечает 400.
func ID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		response.BadID(w, r)
		return 0, false
	}
	return id, true
}

// QueryInt читает целый параметр строки запроса. Отсутствующий параметр даёт def.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.Invalid("El parámetro " + key + " debe ser un número entero")
	}
	return v, nil
}

// QueryInt64Ptr читает необязательный целый параметр.
func QueryInt64Ptr(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, models.Invalid("El parámetro " + key + " debe ser un número entero")
	}
	return &v, nil
}
