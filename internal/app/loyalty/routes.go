// Package loyalty собирает HTTP-приложение кабинета профессионала.
package loyalty

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-документа.
	_ "github.com/magabrotheeeer/loyalty-platform/docs"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/handlers/admin/role"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/handlers/auth/signin"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/handlers/auth/signout"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/handlers/dashboard/me"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/handlers/functions/invoke"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/handlers/health"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/handlers/onboarding/wizard"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/handlers/plans/list"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loyalty-platform/internal/metrics"
)

// PlanService нужен и каталогу, и мастеру подключения.
type PlanService interface {
	list.Service
	wizard.PlanGetter
}

// AuthService — вход и выход.
type AuthService interface {
	signin.Service
	signout.Service
}

// Deps — зависимости маршрутов.
type Deps struct {
	Logger         *slog.Logger
	Tokens         middlewarectx.TokenParser
	Users          middlewarectx.UserLoader
	Auth           AuthService
	Roles          role.Service
	Plans          PlanService
	Onboarding     wizard.Registry
	Functions      invoke.Gateway
	IsPublicFunc   func(name string) bool
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	SignInRPS      float64
	SignInBurst    int
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	log := d.Logger

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		d.Metrics.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(log).ServeHTTP)
		r.Get("/plans", list.New(log, d.Plans).ServeHTTP)
		r.With(middlewarectx.RateLimitMiddleware(log, d.SignInRPS, d.SignInBurst)).
			Post("/auth/signin", signin.New(log, d.Auth, d.Metrics).ServeHTTP)

		// Функции backend-а: токен проверяет сам backend
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.BearerPassthrough)
			h := invoke.New(log, d.Functions, d.Metrics, d.IsPublicFunc)
			r.Post("/functions/{name}", h.ServeHTTP)
			r.Patch("/functions/{name}", h.ServeHTTP)
			r.Delete("/functions/{name}", h.ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Tokens, log))
			r.Post("/auth/signout", signout.New(log, d.Auth).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.ProfileMiddleware(log, d.Users))
				r.Use(middlewarectx.RequireProfessional(log))

				r.Get("/me", me.New(log).ServeHTTP)

				wz := wizard.New(log, d.Onboarding, d.Plans)
				r.Post("/onboarding", wz.Start)
				r.Get("/onboarding/{id}", wz.Get)
				r.Delete("/onboarding/{id}", wz.End)
				r.Put("/onboarding/{id}/plan", wz.SelectPlan)
				r.Delete("/onboarding/{id}/plan", wz.ClearPlan)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.ProfileMiddleware(log, d.Users))
				r.Use(middlewarectx.RequireAdmin(log))

				r.Post("/users/promote", role.New(log, d.Roles, d.Metrics, role.Promote).ServeHTTP)
				r.Post("/users/demote", role.New(log, d.Roles, d.Metrics, role.Demote).ServeHTTP)
			})
		})
	})

	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler)
	}
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
