// Package health реализует HTTP-обработчик проверки готовности сервиса.
// Ответ 200 означает, что хранилище доступно и схема применена.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/speedcode-backend/internal/http/response"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/sl"
)

// ReadyChecker описывает проверку готовности хранилища.
type ReadyChecker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// Handler обрабатывает запросы GET /health.
type Handler struct {
	log     *slog.Logger
	storage ReadyChecker
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, storage ReadyChecker) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.storage.CheckDatabaseReady(r.Context()); err != nil {
		log.Error("storage is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("storage unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
