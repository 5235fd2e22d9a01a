package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leave-management/api"
	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/category"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/internal/transport/middleware"
	"github.com/frahmantamala/leave-management/internal/transport/swagger"
	"github.com/frahmantamala/leave-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Health   *HealthHandler
	Auth     *auth.Handler
	RBAC     *auth.RBACAuthorization
	User     *user.Handler
	Category *category.Handler
	Leave    *leave.Handler
	OpenAPI  *middleware.OpenAPIValidator
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, cfg internal.ServerConfig, base *transport.BaseHandler, logger *slog.Logger) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.TraceHeader},
		ExposedHeaders:   []string{middleware.TraceHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(base))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		if h.OpenAPI != nil {
			r.Use(h.OpenAPI.Middleware)
		}

		r.Get("/health", h.Health.Health)
		r.Get("/ping", h.Health.Ping)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
		})

		r.Get("/categories", h.Category.GetCategories)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/leaves", func(lr chi.Router) {
				lr.Post("/", h.Leave.CreateLeave)
				lr.Get("/mine", h.Leave.GetMyLeaves)
				lr.Get("/{id}", h.Leave.GetLeave)
				lr.Patch("/{id}/cancel", h.Leave.CancelLeave)

				// reviewer routes
				lr.Group(func(ar chi.Router) {
					ar.Use(h.RBAC.RequireAdmin())
					ar.Get("/", h.Leave.GetAllLeaves)
					ar.Get("/pending", h.Leave.GetPendingLeaves)
					ar.Patch("/{id}/approve", h.Leave.ApproveLeave)
					ar.Patch("/{id}/deny", h.Leave.DenyLeave)
				})
			})
		})
	})
}
