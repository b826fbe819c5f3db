// Package storage определяет общие ошибки уровня хранилища.
// Сервисы сравнивают их через errors.Is и отображают в HTTP-статусы.
package storage

import "errors"

var (
	// ErrEmailTaken — email уже зарегистрирован (нарушение уникального индекса).
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound — пользователь с таким uid или email не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound — сессия отсутствует или истекла.
	ErrSessionNotFound = errors.New("session not found")
)
