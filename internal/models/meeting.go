package models

import "time"

// Статусы встречи.
const (
	MeetingScheduled = "scheduled"
	MeetingCompleted = "completed"
	MeetingCancelled = "cancelled"
)

// Meeting представляет запланированную встречу в рамках записи на услугу.
// Завершение встречи с DurationHours > 0 атомарно списывает часы
// с тарифицируемой записи.
type Meeting struct {
	ID            int       // Идентификатор встречи
	EnrollmentID  int       // Запись, в рамках которой проходит встреча
	UserUID       string    // Клиент
	ScheduledAt   time.Time // Время начала
	DurationHours int       // Длительность в часах (списывается с лимита)
	Status        string    // Статус встречи
	Notes         string    // Заметки ментора
}

// DummyMeeting используется для приёма данных о встрече из JSON-запроса.
type DummyMeeting struct {
	EnrollmentID  int    `json:"enrollment_id" validate:"required,gt=0"`
	ScheduledAt   string `json:"scheduled_at" validate:"required"` // Формат 02-01-2006 15:04
	DurationHours int    `json:"duration_hours" validate:"required,gt=0"`
	Notes         string `json:"notes,omitempty"`
}
