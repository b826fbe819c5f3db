// Package speedcode предоставляет сборку приложения и его маршруты.
package speedcode

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/speedcode-backend/internal/config"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/handlers/health"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/handlers/score/leaderboard"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/handlers/score/submit"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/handlers/user/profileread"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/handlers/user/profileupdate"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/speedcode-backend/internal/services/auth"
	scoreservice "github.com/magabrotheeeer/speedcode-backend/internal/services/score"
	"github.com/magabrotheeeer/speedcode-backend/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	db *repository.Storage,
	authService *authservice.Service, scoreService *scoreservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	// Фронтенд живёт на другом origin и ходит с cookie,
	// поэтому AllowCredentials обязателен.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger, db).ServeHTTP)
		r.Get("/leaderboard", leaderboard.New(logger, scoreService).ServeHTTP)
		r.Post("/logout", logout.New(logger, authService, cfg.Session).ServeHTTP)

		// Auth-ручки под rate limit
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/register", register.New(logger, authService, cfg.Session).ServeHTTP)
			r.Post("/login", login.New(logger, authService, cfg.Session).ServeHTTP)
		})

		// Группа с проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(authService, cfg.Session.CookieName, logger))
			r.Get("/me", me.New(logger, authService).ServeHTTP)
			r.Get("/profile", profileread.New(logger, authService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, authService).ServeHTTP)
			r.Post("/submit", submit.New(logger, scoreService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
}
