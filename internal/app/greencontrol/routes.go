package greencontrol

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/greencontrol/docs"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/auth"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/contabilidad"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/cultivo"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/finanzas"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/n8n"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/notificacion"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/parcela"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/siembra"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/tarea"
	"github.com/magabrotheeeer/greencontrol/internal/http/handlers/usuario"
	"github.com/magabrotheeeer/greencontrol/internal/http/middlewarectx"
)

// Handlers обработчики всех ресурсов API.
type Handlers struct {
	Auth         *auth.Handler
	Parcela      *parcela.Handler
	Cultivo      *cultivo.Handler
	Siembra      *siembra.Handler
	Tarea        *tarea.Handler
	Gasto        *finanzas.Handler
	Ingreso      *finanzas.Handler
	Usuario      *usuario.Handler
	Notificacion *notificacion.Handler
	Contabilidad *contabilidad.Handler
	N8N          *n8n.Handler
	Health       http.Handler
	Metrics      http.Handler
}

// Middleware общие middleware API.
type Middleware struct {
	Tokens  middlewarectx.TokenValidator
	Limiter *middlewarectx.RateLimiter
	Metrics *middlewarectx.Metrics
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, h Handlers, mw Middleware) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		mw.Metrics.Middleware,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(mw.Limiter, logger))
			r.Post("/Auth/registro", h.Auth.Register)
			r.Post("/Auth/inicio-sesion", h.Auth.Login)
			r.Post("/Notificacion", h.Notificacion.Create)

			r.Route("/N8N/tareas", func(r chi.Router) {
				r.Get("/", h.N8N.Upcoming)
				r.Get("/rango", h.N8N.Range)
				r.Get("/vencidas", h.N8N.Overdue)
				r.Get("/hoy", h.N8N.Today)
				r.Get("/manana", h.N8N.Tomorrow)
			})
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(mw.Tokens, logger))
			r.Use(middlewarectx.RateLimitMiddleware(mw.Limiter, logger))

			r.Route("/Parcela", func(r chi.Router) {
				r.Get("/", h.Parcela.List)
				r.Post("/", h.Parcela.Create)
				r.Get("/{id}", h.Parcela.Get)
				r.Put("/{id}", h.Parcela.Update)
				r.Delete("/{id}", h.Parcela.Delete)
			})
			r.Route("/Cultivo", func(r chi.Router) {
				r.Get("/", h.Cultivo.List)
				r.Post("/", h.Cultivo.Create)
				r.Get("/{id}", h.Cultivo.Get)
				r.Put("/{id}", h.Cultivo.Update)
				r.Delete("/{id}", h.Cultivo.Delete)
			})
			r.Route("/Siembra", func(r chi.Router) {
				r.Get("/", h.Siembra.List)
				r.Post("/", h.Siembra.Create)
				r.Get("/{id}", h.Siembra.Get)
				r.Put("/{id}", h.Siembra.Update)
				r.Delete("/{id}", h.Siembra.Delete)
			})
			r.Route("/Tarea", func(r chi.Router) {
				r.Get("/", h.Tarea.List)
				r.Post("/", h.Tarea.Create)
				r.Get("/parcela/{parcelaId}", h.Tarea.ListByParcel)
				r.Get("/{id}", h.Tarea.Get)
				r.Put("/{id}", h.Tarea.Update)
				r.Put("/{id}/completar", h.Tarea.Complete)
				r.Delete("/{id}", h.Tarea.Delete)
			})
			finance := func(h *finanzas.Handler) func(chi.Router) {
				return func(r chi.Router) {
					r.Get("/", h.List)
					r.Post("/", h.Create)
					r.Get("/{id}", h.Get)
					r.Put("/{id}", h.Update)
					r.Delete("/{id}", h.Delete)
				}
			}
			r.Route("/Gasto", finance(h.Gasto))
			r.Route("/Ingreso", finance(h.Ingreso))

			r.Get("/Usuario/perfil", h.Usuario.Profile)
			r.Put("/Usuario/perfil", h.Usuario.UpdateProfile)
			r.Put("/Usuario/cambiar-contrasena", h.Usuario.ChangePassword)

			r.Get("/Notificacion", h.Notificacion.List)
			r.Get("/Notificacion/{id}", h.Notificacion.Get)
			r.Put("/Notificacion/{id}/marcar-leida", h.Notificacion.MarkRead)

			r.Get("/Contabilidad/resumen", h.Contabilidad.Summary)
		})
	})

	r.Handle("/metrics", h.Metrics)
	r.Handle("/health", h.Health)
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
