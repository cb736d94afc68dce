// Package router arma el árbol de rutas del API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountsctl "github.com/herothreads/api/internal/http/controllers/accounts"
	authctl "github.com/herothreads/api/internal/http/controllers/auth"
	catalogctl "github.com/herothreads/api/internal/http/controllers/catalog"
	healthctl "github.com/herothreads/api/internal/http/controllers/health"
	sessionctl "github.com/herothreads/api/internal/http/controllers/session"
	httperrors "github.com/herothreads/api/internal/http/errors"
	"github.com/herothreads/api/internal/http/middlewares"
	"github.com/herothreads/api/internal/jwt"
	"github.com/herothreads/api/internal/rate"
)

// Deps son las piezas ya construidas que el router conecta.
type Deps struct {
	Auth     *authctl.Controller
	Session  *sessionctl.Controller
	Catalog  *catalogctl.Controller
	Accounts *accountsctl.Controller
	Health   *healthctl.Controller

	Sessions *jwt.Issuer

	// Limiters opcionales para endpoints sensibles; nil desactiva.
	LoginLimiter  rate.Limiter
	ForgotLimiter rate.Limiter

	CORSOrigins []string
}

// New construye el handler raíz con la cadena de middlewares global.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithLogging())
	r.Use(middlewares.WithMetrics())
	r.Use(middlewares.WithCORS(d.CORSOrigins))
	r.Use(middlewares.WithAuth(d.Sessions))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", d.Health.Health)

		api.With(limit(d.LoginLimiter, "login")).Post("/login", d.Auth.Login)

		api.Route("/auth", func(a chi.Router) {
			a.Post("/register", d.Auth.Register)
			a.With(limit(d.ForgotLimiter, "forgot")).Post("/forgot-password", d.Auth.ForgotPassword)
			a.Get("/validate-reset-token/{token}", d.Auth.ValidateResetToken)
			a.Post("/reset-password", d.Auth.ResetPassword)
			a.Get("/google/url", d.Auth.GoogleAuthURL)
			a.Post("/google/callback", d.Auth.GoogleCallback)
		})

		api.Get("/email/verify/{token}", d.Auth.VerifyEmail)

		api.Route("/session", func(s chi.Router) {
			s.Post("/update-activity", d.Session.UpdateActivity)
			s.Get("/info/{id}", d.Session.Info)
		})

		api.Route("/products", func(p chi.Router) {
			p.Get("/", d.Catalog.ListProducts)
			p.Get("/{id}", d.Catalog.GetProduct)

			p.Group(func(admin chi.Router) {
				admin.Use(middlewares.RequireAdmin())
				admin.Post("/", d.Catalog.CreateProduct)
				admin.Put("/{id}", d.Catalog.UpdateProduct)
				admin.Delete("/{id}", d.Catalog.DeleteProduct)
			})
		})

		api.Route("/sales", func(s chi.Router) {
			s.With(middlewares.RequireAuth()).Post("/", d.Catalog.CreateSale)

			s.Group(func(admin chi.Router) {
				admin.Use(middlewares.RequireAdmin())
				admin.Get("/", d.Catalog.ListSales)
				admin.Get("/{id}", d.Catalog.GetSale)
			})
		})

		api.Route("/accounts", func(a chi.Router) {
			a.Use(middlewares.RequireAdmin())
			a.Get("/", d.Accounts.List)
			a.Get("/{id}", d.Accounts.Get)
			a.Put("/{id}", d.Accounts.Update)
			a.Delete("/{id}", d.Accounts.Delete)
		})
	})

	return r
}

// limit envuelve con rate limit solo si hay limiter configurado.
func limit(l rate.Limiter, scope string) func(http.Handler) http.Handler {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middlewares.WithRateLimit(l, scope)
}
