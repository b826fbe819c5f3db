// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Определяет структуру Request для входных данных, выполняет декодирование
// JSON, валидацию полей и делегирует создание пользователя сервису
// аутентификации. Успешная регистрация сразу открывает сессию —
// пользователь считается вошедшим без отдельного login.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/speedcode-backend/internal/config"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/response"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/cookie"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/sl"
	"github.com/magabrotheeeer/speedcode-backend/internal/storage"
)

// Request — входные данные для регистрации
type Request struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, name, email, password string) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log        *slog.Logger
	auth       Service
	sessionCfg config.Session
	validate   *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service, sessionCfg config.Session) *Handler {
	return &Handler{
		log:        log,
		auth:       auth,
		sessionCfg: sessionCfg,
		validate:   validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	token, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			log.Error("email already registered", slog.String("email", req.Email))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("email already registered"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	http.SetCookie(w, cookie.Session(h.sessionCfg, token, 0))

	log.Info("user registered", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "registered",
	}))
}
