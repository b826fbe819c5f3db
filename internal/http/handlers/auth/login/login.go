// Package login реализует HTTP-обработчик входа пользователей.
//
// Проверяет учетные данные через сервис аутентификации и при успехе
// выставляет cookie с токеном сессии. Флаг remember_me продлевает
// сессию до длинного окна (обычно 30 дней), без него cookie живёт
// до закрытия браузера.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/speedcode-backend/internal/config"
	"github.com/magabrotheeeer/speedcode-backend/internal/http/response"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/cookie"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/sl"
	authservice "github.com/magabrotheeeer/speedcode-backend/internal/services/auth"
)

// Request — структура входных данных для авторизации.
// Длина пароля здесь не проверяется: ограничение действует при
// регистрации, а любой несовпавший пароль должен отвечать единым 401.
type Request struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, password string, remember bool) (string, error)
}

// Handler обрабатывает HTTP-запросы авторизации.
type Handler struct {
	log        *slog.Logger
	auth       Service
	sessionCfg config.Session
	validate   *validator.Validate
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, auth Service, sessionCfg config.Session) *Handler {
	return &Handler{
		log:        log,
		auth:       auth,
		sessionCfg: sessionCfg,
		validate:   validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, err := h.auth.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Error("invalid credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to login"))
		return
	}

	// Без remember_me cookie остаётся браузерной: Max-Age не выставляется.
	var maxAge time.Duration
	if req.RememberMe {
		maxAge = h.sessionCfg.RememberTTL
	}
	http.SetCookie(w, cookie.Session(h.sessionCfg, token, maxAge))

	log.Info("login success", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "logged in",
	}))
}
