// Package score содержит бизнес-логику начисления очков и таблицы лидеров.
//
// Политика начисления — накопительная: каждая отправка прибавляется к
// текущей сумме, отсутствующий результат считается нулём. Сам инкремент
// атомарен на уровне базы, сервис только валидирует значение.
package score

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/speedcode-backend/internal/models"
)

// ErrInvalidScore — значение вне допустимого диапазона [0, 100].
var ErrInvalidScore = errors.New("invalid score")

const (
	minScore = 0
	maxScore = 100

	leaderboardCacheKey = "leaderboard"
	leaderboardCacheTTL = 30 * time.Second
)

// ScoreRepository определяет методы для работы с очками в хранилище.
type ScoreRepository interface {
	// AddScore атомарно прибавляет value и возвращает новую сумму.
	AddScore(ctx context.Context, userUID string, value int) (int, error)
	// GetScore возвращает текущие очки, nil — результата ещё нет.
	GetScore(ctx context.Context, userUID string) (*int, error)
	// ListLeaderboard возвращает участников с результатом по убыванию очков.
	ListLeaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с очками, включая кеширование
// таблицы лидеров.
type Service struct {
	repo  ScoreRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ScoreRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Submit прибавляет value к очкам пользователя и возвращает новую сумму.
// Значение вне [0, 100] — ErrInvalidScore. Кеш таблицы лидеров
// инвалидируется, чтобы следующий запрос увидел свежий порядок.
func (s *Service) Submit(ctx context.Context, userUID string, value int) (int, error) {
	if value < minScore || value > maxScore {
		return 0, ErrInvalidScore
	}

	total, err := s.repo.AddScore(ctx, userUID, value)
	if err != nil {
		return 0, err
	}
	s.log.Info("score submitted",
		slog.String("user_uid", userUID),
		slog.Int("value", value),
		slog.Int("total", total))

	if err := s.cache.Invalidate(leaderboardCacheKey); err != nil {
		s.log.Warn("failed to invalidate leaderboard cache", slog.Any("err", err))
	}
	return total, nil
}

// Leaderboard возвращает таблицу лидеров, используя кеш или репозиторий.
func (s *Service) Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	var result []*models.LeaderboardEntry
	found, err := s.cache.Get(leaderboardCacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read leaderboard cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListLeaderboard(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(leaderboardCacheKey, result, leaderboardCacheTTL); err != nil {
		s.log.Warn("failed to cache leaderboard", slog.Any("err", err))
	}
	return result, nil
}

// GetScore возвращает текущие очки пользователя, nil — результата ещё нет.
func (s *Service) GetScore(ctx context.Context, userUID string) (*int, error) {
	return s.repo.GetScore(ctx, userUID)
}
