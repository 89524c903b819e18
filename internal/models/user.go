// Package models содержит доменные структуры платформы менторства:
// пользователей, записи на услуги, встречи, диалоги и рассылки.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Статусы клиентской сессии (доступа к платным услугам).
// Не путать с сессией аутентификации: этот статус показывает,
// активен ли у пользователя оплаченный доступ к календарю и встречам.
const (
	SessionActive    = "active"
	SessionInactive  = "inactive"
	SessionSuspended = "suspended"
)

// User представляет зарегистрированного пользователя системы.
//
// IsConfirmed — трёхзначный флаг подтверждения аккаунта администратором:
// nil — решение ещё не принято, true — подтверждён, false — отклонён.
// RejectionReason заполняется только при отклонении; непустая причина
// всегда означает IsConfirmed == false.
type User struct {
	UID                string     // Уникальный идентификатор пользователя
	Email              string     // Электронная почта
	Username           string     // Имя пользователя (уникальное)
	PasswordHash       string     // Хэш пароля пользователя
	Role               string     // Роль пользователя: admin или client
	IsConfirmed        *bool      // Статус подтверждения аккаунта администратором
	RejectionReason    string     // Причина отклонения (пустая строка — причины нет)
	SessionStatus      string     // Статус клиентской сессии
	SessionActivatedAt *time.Time // Когда сессия была активирована
	SessionActivatedBy *string    // Кем активирована: "system" или uid администратора
	CreatedAt          time.Time  // Дата регистрации
}

// SessionState — срез полей пользователя, относящихся к клиентской сессии.
type SessionState struct {
	Status      string
	ActivatedAt *time.Time
	ActivatedBy *string
}

// Confirmed сообщает, подтверждён ли аккаунт пользователя.
func (u *User) Confirmed() bool {
	return u.IsConfirmed != nil && *u.IsConfirmed
}
