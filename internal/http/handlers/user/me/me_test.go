package me

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/speedcode-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/speedcode-backend/internal/models"
	"github.com/magabrotheeeer/speedcode-backend/internal/storage"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) GetProfile(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMeHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()
	score := 70

	tests := []struct {
		name           string
		userUID        string
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantScore      any
	}{
		{
			name:    "user with score",
			userUID: "uid-1",
			mockUser: &models.User{
				UID: "uid-1", Name: "Alice", Email: "alice@example.com", Score: &score,
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantScore:      float64(70),
		},
		{
			// Пользователь ещё не отправлял результат: score приходит как null.
			name:    "user without score",
			userUID: "uid-1",
			mockUser: &models.User{
				UID: "uid-1", Name: "Alice", Email: "alice@example.com",
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantScore:      nil,
		},
		{
			name:           "no user uid in context",
			userUID:        "",
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
		},
		{
			name:           "user removed under active session",
			userUID:        "uid-1",
			mockErr:        fmt.Errorf("storage.GetUser: %w", storage.ErrUserNotFound),
			wantStatusCode: http.StatusNotFound,
			wantStatus:     "Error",
		},
		{
			name:           "storage error",
			userUID:        "uid-1",
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.mockUser != nil || tt.mockErr != nil {
				authMock.On("GetProfile", mock.Anything, tt.userUID).
					Return(tt.mockUser, tt.mockErr).Once()
			}
			handler := New(logger, authMock)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantStatusCode == http.StatusOK {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.mockUser.UID, data["id"])
				assert.Equal(t, tt.mockUser.Name, data["name"])
				assert.Equal(t, tt.mockUser.Email, data["email"])
				assert.Equal(t, tt.wantScore, data["score"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
