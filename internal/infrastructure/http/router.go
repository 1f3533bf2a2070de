package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/http/handlers"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	PlantsHandler  *handlers.PlantsHandler
	SavedHandler   *handlers.SavedHandler
	ProfileHandler *handlers.ProfileHandler
	HomeHandler    *handlers.HomeHandler
	HealthHandler  *handlers.HealthHandler
	SearchSocket   *handlers.SearchSocketHandler
	RequireJWT     func(http.Handler) http.Handler // reject without a valid bearer token
	OptionalJWT    func(http.Handler) http.Handler // attach the session when present
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	IPRateLimit    func(http.Handler) http.Handler
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.Live)
		r.Get("/health/ready", cfg.HealthHandler.Ready)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	// The websocket upgrade cannot pass the JSON content-type gate, so it
	// mounts outside the JSON group.
	if cfg.SearchSocket != nil {
		r.Get("/search/live", cfg.SearchSocket.Serve)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimid.AllowContentType("application/json"))
		r.Use(chimid.SetHeader("Content-Type", "application/json"))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/refresh", cfg.AuthHandler.Refresh)
			r.Post("/logout", cfg.AuthHandler.Logout)
			if cfg.RequireJWT != nil {
				r.Group(func(r chi.Router) {
					r.Use(cfg.RequireJWT)
					r.Get("/session", cfg.AuthHandler.Session)
				})
			}
		})

		r.Route("/plants", func(r chi.Router) {
			if cfg.OptionalJWT != nil {
				r.Use(cfg.OptionalJWT)
			}
			r.Get("/", cfg.PlantsHandler.List)
			r.Get("/search", cfg.PlantsHandler.Search)
			r.Get("/{id}", cfg.PlantsHandler.Get)
		})

		r.Get("/categories", cfg.PlantsHandler.Categories)

		if cfg.RequireJWT != nil {
			r.Route("/saved", func(r chi.Router) {
				r.Use(cfg.RequireJWT)
				r.Get("/", cfg.SavedHandler.List)
				r.Get("/{plantID}", cfg.SavedHandler.IsSaved)
				r.Post("/{plantID}", cfg.SavedHandler.Save)
				r.Delete("/{plantID}", cfg.SavedHandler.Remove)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Use(cfg.RequireJWT)
				r.Get("/", cfg.ProfileHandler.Get)
				r.Put("/", cfg.ProfileHandler.Update)
			})
		}

		if cfg.HomeHandler != nil {
			r.Get("/home", cfg.HomeHandler.Feed)
		}
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
