// Package middlewarectx содержит HTTP middleware API: проверку JWT,
// ограничение частоты запросов и метрики Prometheus.
//
// JWTMiddleware кладёт идентификатор пользователя в контекст запроса,
// обработчики читают его через UserIDFrom.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/greencontrol/internal/http/response"
	"github.com/magabrotheeeer/greencontrol/internal/lib/jwt"
	"github.com/magabrotheeeer/greencontrol/internal/lib/sl"
	"github.com/magabrotheeeer/greencontrol/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID ключ идентификатора пользователя (int64).
	UserID Key = "user_id"
	// Email ключ почты пользователя.
	Email Key = "email"
)

// TokenValidator проверяет токен сессии.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// JWTMiddleware пропускает запрос только с валидным заголовком Authorization: Bearer <token>.
func JWTMiddleware(validator TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Info("missing or invalid authorization header")
				response.Fail(w, r, log, models.ErrUnauthenticated)
				return
			}

			claims, err := validator.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				response.Fail(w, r, log, models.ErrUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom возвращает идентификатор пользователя из контекста.
func UserIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserID).(int64)
	return id, ok && id > 0
}

// WithUserID кладёт идентификатор пользователя в контекст.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, UserID, id)
}
