package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/speedcode-backend/internal/models"
	"github.com/magabrotheeeer/speedcode-backend/internal/storage"
)

// AddScore атомарно прибавляет value к очкам пользователя и возвращает
// новую сумму. NULL трактуется как 0, поэтому первая отправка заводит счёт.
// Инкремент выполняется одним UPDATE на стороне базы: одновременные
// отправки одного пользователя не теряют обновлений.
func (s *Storage) AddScore(ctx context.Context, userUID string, value int) (int, error) {
	const op = "storage.AddScore"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `UPDATE users
			  SET score = COALESCE(score, 0) + $1
			  WHERE uid = $2
			  RETURNING score;`
	if err := s.DB.QueryRowContext(ctx, query, value, userUID).Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// GetScore возвращает текущие очки пользователя, nil — если результата ещё нет.
func (s *Storage) GetScore(ctx context.Context, userUID string) (*int, error) {
	const op = "storage.GetScore"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var score sql.NullInt64
	query := `SELECT score FROM users WHERE uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&score); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !score.Valid {
		return nil, nil
	}
	v := int(score.Int64)
	return &v, nil
}

// ListLeaderboard возвращает пользователей с непустым результатом,
// отсортированных по убыванию очков. Равные очки упорядочены по дате
// регистрации и uid, чтобы порядок был детерминированным между вызовами.
func (s *Storage) ListLeaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	const op = "storage.ListLeaderboard"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, score
			  FROM users
			  WHERE score IS NOT NULL
			  ORDER BY score DESC, created_at ASC, uid ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err = rows.Scan(&entry.UID, &entry.Name, &entry.Score); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
