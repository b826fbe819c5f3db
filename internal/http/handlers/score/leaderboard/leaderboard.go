// Package leaderboard реализует HTTP-обработчик чтения таблицы лидеров.
package leaderboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/speedcode-backend/internal/http/response"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/sl"
	"github.com/magabrotheeeer/speedcode-backend/internal/models"
)

// Service описывает интерфейс чтения таблицы лидеров.
type Service interface {
	Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error)
}

// Handler обрабатывает запросы GET /leaderboard.
type Handler struct {
	log    *slog.Logger
	scores Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, scores Service) *Handler {
	return &Handler{
		log:    log,
		scores: scores,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.score.leaderboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	entries, err := h.scores.Leaderboard(r.Context())
	if err != nil {
		log.Error("failed to list leaderboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list leaderboard"))
		return
	}
	if entries == nil {
		entries = []*models.LeaderboardEntry{}
	}

	render.JSON(w, r, response.OKWithData(entries))
}
