package models

import "time"

// Статусы записи на услугу.
const (
	EnrollmentActive    = "active"
	EnrollmentPaused    = "paused"
	EnrollmentCancelled = "cancelled"
	EnrollmentCompleted = "completed"
)

// Enrollment представляет купленный или назначенный доступ пользователя к услуге.
//
// ExpiresAt == nil означает бессрочный доступ, HoursRemaining == nil —
// доступ не тарифицируется по часам. Истечение срока никогда не записывается
// в поле Status: строка остаётся active в хранилище и после ExpiresAt,
// актуальность всегда вычисляется предикатом IsCurrent.
type Enrollment struct {
	ID             int        // Идентификатор записи
	UserUID        string     // Владелец записи
	ServiceID      int        // Услуга, к которой открыт доступ
	Status         string     // Статус записи
	EnrolledAt     time.Time  // Дата оформления
	ExpiresAt      *time.Time // Дата истечения доступа (nil — бессрочно)
	HoursRemaining *int       // Остаток оплаченных часов (nil — без лимита)
}

// IsCurrent — единственный предикат актуальности записи, общий для
// бизнес-логики, сборщика сессий и слоя хранилища (SQL-запросы повторяют
// то же условие). Запись актуальна, если её статус active и срок действия
// не истёк.
func (e *Enrollment) IsCurrent(now time.Time) bool {
	return e.Status == EnrollmentActive && (e.ExpiresAt == nil || e.ExpiresAt.After(now))
}

// DummyEnrollment используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Enrollment. Дата истечения приходит
// строкой, чтобы её можно было валидировать и парсить вручную.
type DummyEnrollment struct {
	UserUID        string `json:"user_uid" validate:"required,uuid"`            // Пользователь
	ServiceID      int    `json:"service_id" validate:"required,gt=0"`          // Услуга
	ExpiresAt      string `json:"expires_at,omitempty" validate:"omitempty"`    // Дата истечения в формате 02-01-2006
	HoursRemaining *int   `json:"hours_remaining,omitempty" validate:"omitempty,gte=0"` // Лимит часов
}
