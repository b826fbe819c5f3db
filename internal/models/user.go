// Package models содержит доменные структуры пользователя и таблицы лидеров.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного участника.
// Score — указатель: nil означает, что пользователь ещё не отправлял результат.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя
	Email        string    // Электронная почта (уникальная, ключ для входа)
	PasswordHash string    // Хэш пароля пользователя
	Score        *int      // Накопленные очки, nil — ещё не участвовал
	CreatedAt    time.Time // Дата регистрации
}

// LeaderboardEntry — строка таблицы лидеров.
type LeaderboardEntry struct {
	UID   string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}
