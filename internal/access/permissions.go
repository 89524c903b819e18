package access

import "github.com/magabrotheeeer/mentor-platform/internal/models"

// Capabilities — набор прав роли. Пустое значение — прав нет.
type Capabilities struct {
	ManageUsers        bool // Подтверждение и отклонение аккаунтов
	ManageCatalog      bool // Редактирование каталога услуг
	ManageRoadmaps     bool // Создание дорожных карт
	SendNewsletters    bool // Кампании рассылок
	ViewAllEnrollments bool // Просмотр чужих записей
	BookMeetings       bool // Бронирование встреч
	SendMessages       bool // Внутренние сообщения
}

// Таблица прав неизменяемая: роль отображается в готовый набор,
// никакой шаблон прав в рантайме не мутируется.
var capabilitiesByRole = map[string]Capabilities{
	models.RoleAdmin: {
		ManageUsers:        true,
		ManageCatalog:      true,
		ManageRoadmaps:     true,
		SendNewsletters:    true,
		ViewAllEnrollments: true,
		BookMeetings:       true,
		SendMessages:       true,
	},
	models.RoleClient: {
		BookMeetings: true,
		SendMessages: true,
	},
}

// CapabilitiesFor возвращает набор прав роли.
// Неизвестная роль получает пустой набор.
func CapabilitiesFor(role string) Capabilities {
	return capabilitiesByRole[role]
}
