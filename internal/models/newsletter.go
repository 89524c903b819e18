package models

import "time"

// Статусы кампании рассылки.
const (
	CampaignDraft  = "draft"
	CampaignQueued = "queued"
	CampaignSent   = "sent"
)

// Campaign — кампания почтовой рассылки для подтверждённых пользователей.
type Campaign struct {
	ID        string    // Идентификатор кампании (uuid)
	Subject   string    // Тема письма
	Body      string    // Текст письма
	Status    string    // Статус кампании
	CreatedAt time.Time // Дата создания
}

// CampaignLetter — одно письмо кампании, публикуемое в очередь для отправки.
type CampaignLetter struct {
	CampaignID string `json:"campaign_id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// DummyCampaign используется для приёма данных кампании из JSON-запроса.
type DummyCampaign struct {
	Subject string `json:"subject" validate:"required,min=3,max=200"`
	Body    string `json:"body" validate:"required,min=1"`
}
