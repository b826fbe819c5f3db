// Package sessions реализует серверное хранилище сессий поверх Redis.
//
// Токен сессии — непрозрачный UUID, значением хранится UID пользователя.
// Время жизни записи задаётся TTL ключа, поэтому пассивное истечение
// сессии обеспечивает сам Redis.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/speedcode-backend/internal/storage"
)

const keyPrefix = "session:"

// Store хранит сессии в Redis.
type Store struct {
	db *redis.Client
}

// New создает Store поверх готового клиента Redis.
func New(db *redis.Client) *Store {
	return &Store{db: db}
}

// Create выпускает новый токен для пользователя и сохраняет сессию с ttl.
func (s *Store) Create(ctx context.Context, userUID string, ttl time.Duration) (string, error) {
	const op = "sessions.Create"
	token := uuid.NewString()
	if err := s.db.Set(ctx, keyPrefix+token, userUID, ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Get возвращает UID пользователя по токену.
// Отсутствующий или истёкший токен — storage.ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, token string) (string, error) {
	const op = "sessions.Get"
	userUID, err := s.db.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%s: %w", op, storage.ErrSessionNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return userUID, nil
}

// Delete удаляет сессию. Удаление отсутствующего токена не ошибка:
// DEL по несуществующему ключу возвращает 0, операция идемпотентна.
func (s *Store) Delete(ctx context.Context, token string) error {
	const op = "sessions.Delete"
	if err := s.db.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
