// Package submit реализует HTTP-обработчик отправки результата.
//
// Значение принимается в закрытом диапазоне [0, 100] и прибавляется
// к накопленной сумме пользователя, новая сумма возвращается в ответе.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/speedcode-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/response"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/sl"
	scoreservice "github.com/magabrotheeeer/speedcode-backend/internal/services/score"
	"github.com/magabrotheeeer/speedcode-backend/internal/storage"
)

// Request — входные данные для отправки результата.
// Score — указатель, чтобы validator не принимал отсутствие поля за ноль.
type Request struct {
	Score *int `json:"score" validate:"required"`
}

// Service описывает интерфейс начисления очков.
type Service interface {
	Submit(ctx context.Context, userUID string, value int) (int, error)
}

// Handler обрабатывает запросы POST /submit.
type Handler struct {
	log      *slog.Logger
	scores   Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, scores Service) *Handler {
	return &Handler{
		log:      log,
		scores:   scores,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.score.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not logged in"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	total, err := h.scores.Submit(r.Context(), userUID, *req.Score)
	if err != nil {
		switch {
		case errors.Is(err, scoreservice.ErrInvalidScore):
			log.Error("invalid score", slog.Int("score", *req.Score))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid score"))
		case errors.Is(err, storage.ErrUserNotFound):
			log.Error("user not found", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to submit score", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to submit score"))
		}
		return
	}

	log.Info("score submitted", slog.String("user_uid", userUID), slog.Int("total", total))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message":     "score added successfully",
		"total_score": total,
	}))
}
