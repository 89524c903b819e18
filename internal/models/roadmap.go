package models

import "time"

// Статусы вехи дорожной карты.
const (
	MilestonePending    = "pending"
	MilestoneInProgress = "in_progress"
	MilestoneDone       = "done"
)

// Roadmap — план развития клиента в рамках записи на услугу.
type Roadmap struct {
	ID           int       // Идентификатор дорожной карты
	EnrollmentID int       // Запись, к которой привязан план
	Title        string    // Название плана
	CreatedAt    time.Time // Дата создания
}

// Milestone — одна веха дорожной карты.
type Milestone struct {
	ID        int    `json:"id"`
	RoadmapID int    `json:"roadmap_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Position  int    `json:"position"`
}

// DummyRoadmap используется для приёма дорожной карты из JSON-запроса.
// Вехи создаются вместе с планом, статус у всех стартовый — pending.
type DummyRoadmap struct {
	EnrollmentID int      `json:"enrollment_id" validate:"required,gt=0"`
	Title        string   `json:"title" validate:"required,min=3,max=150"`
	Milestones   []string `json:"milestones" validate:"required,min=1,dive,required"`
}

// DummyMilestoneUpdate используется для смены статуса вехи.
type DummyMilestoneUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress done"`
}
