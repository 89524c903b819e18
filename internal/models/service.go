package models

// Service представляет услугу из каталога: программу менторства или
// консультационный пакет.
type Service struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int    `json:"price"`
	DurationWeeks int    `json:"duration_weeks"`
	IsPublished   bool   `json:"is_published"`
}

// DummyService используется для приёма данных каталога из JSON-запроса.
type DummyService struct {
	Name          string `json:"name" validate:"required,min=3,max=100"`
	Description   string `json:"description" validate:"required"`
	Price         int    `json:"price" validate:"required,gt=0"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,gt=0"`
	IsPublished   bool   `json:"is_published"`
}
