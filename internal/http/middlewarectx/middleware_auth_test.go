package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/speedcode-backend/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/speedcode-backend/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ResolveSession(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSessionMiddleware(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handlerCalled := false

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		userUID := r.Context().Value(middlewarectx.UserUID)
		assert.Equal(t, "uid-1", userUID)
		w.WriteHeader(http.StatusOK)
	})

	mw := middlewarectx.SessionMiddleware(authMock, "session_token", logger)(nextHandler)

	tests := []struct {
		name           string
		cookieValue    string
		hasCookie      bool
		mockUID        string
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing cookie",
			hasCookie:      false,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "empty cookie value",
			hasCookie:      true,
			cookieValue:    "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "unknown or expired token",
			hasCookie:      true,
			cookieValue:    "stale-token",
			mockErr:        authservice.ErrUnauthenticated,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			// Недоступное хранилище сессий не должно выглядеть как разлогин.
			name:           "session store unavailable",
			hasCookie:      true,
			cookieValue:    "valid-token",
			mockErr:        errors.New("dial tcp 127.0.0.1:6379: connection refused"),
			wantStatusCode: http.StatusInternalServerError,
			wantCalled:     false,
		},
		{
			name:           "active session",
			hasCookie:      true,
			cookieValue:    "valid-token",
			mockUID:        "uid-1",
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			authMock.ExpectedCalls = nil
			authMock.Calls = nil
			if tt.hasCookie && tt.cookieValue != "" {
				authMock.On("ResolveSession", mock.Anything, tt.cookieValue).
					Return(tt.mockUID, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.hasCookie {
				req.AddCookie(&http.Cookie{Name: "session_token", Value: tt.cookieValue})
			}

			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			authMock.AssertExpectations(t)
		})
	}
}
