// Package middlewarectx содержит HTTP middleware для проверки сессии.
//
// SessionMiddleware читает токен из cookie, резолвит его через сервис
// аутентификации и кладёт UID пользователя в контекст запроса.
// При отсутствии или истечении сессии возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/speedcode-backend/internal/http/response"
	"github.com/magabrotheeeer/speedcode-backend/internal/lib/sl"
	authservice "github.com/magabrotheeeer/speedcode-backend/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserUID — ключ для UID пользователя в контексте
const UserUID Key = "user_uid"

// Service описывает интерфейс сервиса для резолва токена сессии.
type Service interface {
	ResolveSession(ctx context.Context, token string) (string, error)
}

// SessionMiddleware возвращает HTTP middleware, который проверяет cookie с сессией.
//
// Если сессия активна, добавляет UID пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func SessionMiddleware(authService Service, cookieName string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				log.Error("missing session cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not logged in"))
				return
			}

			userUID, err := authService.ResolveSession(r.Context(), c.Value)
			if err != nil {
				// Отказ хранилища сессий — не отказ в авторизации:
				// недоступный Redis не должен разлогинивать клиентов.
				if !errors.Is(err, authservice.ErrUnauthenticated) {
					log.Error("failed to resolve session", sl.Err(err))
					w.WriteHeader(http.StatusInternalServerError)
					render.JSON(w, r, response.Error("internal error"))
					return
				}
				log.Error("invalid or expired session", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not logged in"))
				return
			}
			ctx := context.WithValue(r.Context(), UserUID, userUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
