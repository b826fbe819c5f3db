// Package logout реализует HTTP-обработчик выхода.
// Операция идемпотентна: повторный выход и выход без cookie отвечают 200.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/speedcode-backend/internal/config"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/response"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/cookie"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log        *slog.Logger
	auth       Service
	sessionCfg config.Session
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service, sessionCfg config.Session) *Handler {
	return &Handler{
		log:        log,
		auth:       auth,
		sessionCfg: sessionCfg,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if c, err := r.Cookie(h.sessionCfg.CookieName); err == nil && c.Value != "" {
		if err := h.auth.Logout(r.Context(), c.Value); err != nil {
			log.Error("failed to destroy session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to logout"))
			return
		}
	}

	http.SetCookie(w, cookie.Expired(h.sessionCfg))

	log.Info("user logged out")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "logged out",
	}))
}
