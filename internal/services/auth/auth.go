// Package auth содержит бизнес-логику регистрации, входа и работы с сессиями.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/speedcode-backend/internal/lib/password"
	"github.com/magabrotheeeer/speedcode-backend/internal/models"
	"github.com/magabrotheeeer/speedcode-backend/internal/storage"
)

var (
	// ErrInvalidCredentials — неверная пара email/пароль. Намеренно одна
	// ошибка для «пользователь не найден» и «пароль не совпал», чтобы
	// ответ не раскрывал, какой из случаев произошёл.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated — токен сессии отсутствует, неизвестен или истёк.
	ErrUnauthenticated = errors.New("not logged in")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID или storage.ErrUserNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdateUserProfile частично обновляет профиль, пустые поля пропускаются.
	UpdateUserProfile(ctx context.Context, userUID, name, email string) error
}

// SessionStore описывает серверное хранилище сессий.
type SessionStore interface {
	// Create выпускает токен для пользователя со временем жизни ttl.
	Create(ctx context.Context, userUID string, ttl time.Duration) (string, error)
	// Get возвращает UID по токену или storage.ErrSessionNotFound.
	Get(ctx context.Context, token string) (string, error)
	// Delete удаляет сессию, отсутствующий токен не считается ошибкой.
	Delete(ctx context.Context, token string) error
}

// Service отвечает за регистрацию, авторизацию и привязку сессий к пользователям.
type Service struct {
	users       UserRepository
	sessions    SessionStore
	log         *slog.Logger
	bcryptCost  int
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

// New создает новый экземпляр Service.
func New(users UserRepository, sessions SessionStore, log *slog.Logger,
	bcryptCost int, sessionTTL, rememberTTL time.Duration) *Service {
	return &Service{
		users:       users,
		sessions:    sessions,
		log:         log,
		bcryptCost:  bcryptCost,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
	}
}

// Register создает нового пользователя и сразу открывает для него сессию,
// как будто он вошёл. Занятый email — storage.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword, s.bcryptCost)
	if err != nil {
		return "", err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	userUID, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}
	s.log.Info("user registered", slog.String("user_uid", userUID))

	token, err := s.sessions.Create(ctx, userUID, s.sessionTTL)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Login проверяет учетные данные и открывает сессию. При remember сессия
// живёт rememberTTL (обычно 30 дней), иначе — sessionTTL. Уже открытые
// сессии пользователя не трогаются.
func (s *Service) Login(ctx context.Context, email, rawPassword string, remember bool) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}
	token, err := s.sessions.Create(ctx, user.UID, ttl)
	if err != nil {
		return "", err
	}
	s.log.Info("user logged in", slog.String("user_uid", user.UID))
	return token, nil
}

// Logout закрывает сессию. Повторный вызов с тем же токеном не ошибка.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ResolveSession возвращает UID пользователя по токену сессии.
func (s *Service) ResolveSession(ctx context.Context, token string) (string, error) {
	userUID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	return userUID, nil
}

// GetProfile возвращает пользователя по UID.
func (s *Service) GetProfile(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}

// UpdateProfile частично обновляет имя и email. Пустое поле оставляет
// прежнее значение — merge, а не полная замена.
func (s *Service) UpdateProfile(ctx context.Context, userUID, name, email string) error {
	if name == "" && email == "" {
		return nil
	}
	if err := s.users.UpdateUserProfile(ctx, userUID, name, email); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	s.log.Info("profile updated", slog.String("user_uid", userUID))
	return nil
}
