package score

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/speedcode-backend/internal/models"
	"github.com/magabrotheeeer/speedcode-backend/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) AddScore(ctx context.Context, userUID string, value int) (int, error) {
	args := m.Called(ctx, userUID, value)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetScore(ctx context.Context, userUID string) (*int, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}
func (m *RepoMock) ListLeaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name       string
		value      int
		setupMocks func(r *RepoMock, c *CacheMock)
		wantTotal  int
		wantErr    error
	}{
		{
			name:  "lower bound accepted",
			value: 0,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("AddScore", mock.Anything, "uid-1", 0).Return(0, nil).Once()
				c.On("Invalidate", "leaderboard").Return(nil).Once()
			},
			wantTotal: 0,
		},
		{
			name:  "upper bound accepted",
			value: 100,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("AddScore", mock.Anything, "uid-1", 100).Return(100, nil).Once()
				c.On("Invalidate", "leaderboard").Return(nil).Once()
			},
			wantTotal: 100,
		},
		{
			name:       "below range rejected",
			value:      -1,
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrInvalidScore,
		},
		{
			name:       "above range rejected",
			value:      101,
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrInvalidScore,
		},
		{
			name:  "user removed under active session",
			value: 50,
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("AddScore", mock.Anything, "uid-1", 50).
					Return(0, storage.ErrUserNotFound).Once()
			},
			wantErr: storage.ErrUserNotFound,
		},
		{
			name:  "cache invalidate error does not fail submit",
			value: 10,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("AddScore", mock.Anything, "uid-1", 10).Return(10, nil).Once()
				c.On("Invalidate", "leaderboard").Return(errors.New("redis down")).Once()
			},
			wantTotal: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cacheMock := new(CacheMock)
			tt.setupMocks(repo, cacheMock)
			service := New(repo, cacheMock, newNoopLogger())

			total, err := service.Submit(context.Background(), "uid-1", tt.value)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantTotal, total)
			}
			repo.AssertExpectations(t)
			cacheMock.AssertExpectations(t)
		})
	}
}

// Накопительная политика: повторная отправка прибавляется к сумме.
func TestSubmit_Accumulates(t *testing.T) {
	repo := new(RepoMock)
	cacheMock := new(CacheMock)
	repo.On("AddScore", mock.Anything, "uid-1", 40).Return(40, nil).Once()
	repo.On("AddScore", mock.Anything, "uid-1", 30).Return(70, nil).Once()
	cacheMock.On("Invalidate", "leaderboard").Return(nil).Twice()
	service := New(repo, cacheMock, newNoopLogger())

	total, err := service.Submit(context.Background(), "uid-1", 40)
	require.NoError(t, err)
	assert.Equal(t, 40, total)

	total, err = service.Submit(context.Background(), "uid-1", 30)
	require.NoError(t, err)
	assert.Equal(t, 70, total)

	repo.AssertExpectations(t)
}

func TestLeaderboard(t *testing.T) {
	entries := []*models.LeaderboardEntry{
		{UID: "uid-1", Name: "Alice", Score: 90},
		{UID: "uid-2", Name: "Bob", Score: 40},
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		want       []*models.LeaderboardEntry
		wantErr    bool
	}{
		{
			name: "cache miss reads repo and fills cache",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "leaderboard", mock.Anything).Return(false, nil).Once()
				r.On("ListLeaderboard", mock.Anything).Return(entries, nil).Once()
				c.On("Set", "leaderboard", mock.Anything, 30*time.Second).Return(nil).Once()
			},
			want: entries,
		},
		{
			name: "cache hit skips repo",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", "leaderboard", mock.Anything).
					Run(func(args mock.Arguments) {
						out := args.Get(1).(*[]*models.LeaderboardEntry)
						*out = entries
					}).
					Return(true, nil).Once()
			},
			want: entries,
		},
		{
			name: "repo error surfaces",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "leaderboard", mock.Anything).Return(false, nil).Once()
				r.On("ListLeaderboard", mock.Anything).
					Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cacheMock := new(CacheMock)
			tt.setupMocks(repo, cacheMock)
			service := New(repo, cacheMock, newNoopLogger())

			got, err := service.Leaderboard(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
			cacheMock.AssertExpectations(t)
		})
	}
}

func TestGetScore(t *testing.T) {
	score := 70
	repo := new(RepoMock)
	repo.On("GetScore", mock.Anything, "uid-1").Return(&score, nil).Once()
	repo.On("GetScore", mock.Anything, "uid-2").Return(nil, nil).Once()
	service := New(repo, new(CacheMock), newNoopLogger())

	got, err := service.GetScore(context.Background(), "uid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 70, *got)

	// Пользователь без результата — nil, а не ноль.
	got, err = service.GetScore(context.Background(), "uid-2")
	require.NoError(t, err)
	assert.Nil(t, got)

	repo.AssertExpectations(t)
}
