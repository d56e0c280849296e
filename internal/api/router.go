package api

import (
	"net/http"

	"github.com/dom/daily-diet-api/internal/api/handlers"
	"github.com/dom/daily-diet-api/internal/api/middleware"
	"github.com/dom/daily-diet-api/internal/config"
	"github.com/dom/daily-diet-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chiMiddleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(services.User)
	mealHandler := handlers.NewMealHandler(services.Meal, cfg.SessionTTL, cfg.EnforceMealOwnership)

	r.Route("/user", func(r chi.Router) {
		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	r.Route("/meals", func(r chi.Router) {
		// Creating a meal starts a session when there is none
		r.Post("/", mealHandler.Create)

		if !cfg.EnforceMealOwnership {
			r.Get("/{id}", mealHandler.Get)
		}

		// Session routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)
			r.Get("/", mealHandler.List)
			r.Get("/total", mealHandler.Metrics)
			if cfg.EnforceMealOwnership {
				r.Get("/{id}", mealHandler.Get)
			}
			r.Put("/{id}", mealHandler.Update)
			r.Delete("/{id}", mealHandler.Delete)
		})
	})

	return r
}
