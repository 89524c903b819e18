// Package access реализует шлюз доступа к страницам платформы.
//
// Решение о допуске принимается как чистая функция от пути запроса и
// содержимого токена сессии поверх статической таблицы классификации
// маршрутов. Пакет не выполняет побочных эффектов и не обращается к
// хранилищу.
package access

// Routes — статическая таблица классификации маршрутов.
// Заполняется один раз при старте приложения и дальше только читается.
type Routes struct {
	PublicPaths         []string // Точные публичные пути (лендинг, формы входа, /pending, /rejected)
	PublicPrefixes      []string // Префиксы публичных путей (статика)
	ServiceDetailPrefix string   // Страницы услуг каталога, публичны всегда
	MessagingPrefix     string   // Раздел сообщений, доступен только подтверждённым
	AdminPrefix         string   // Раздел администратора
	DashboardPath       string   // Общий корень личного кабинета
	AdminDashboardPath  string   // Кабинет администратора
	SignInPath          string   // Страница входа
	PendingPath         string   // Терминальная страница "ожидает подтверждения"
	RejectedPath        string   // Терминальная страница "отклонён"
	UnauthorizedPath    string   // Страница "нет прав"
}

// DefaultRoutes возвращает таблицу маршрутов платформы.
func DefaultRoutes() Routes {
	return Routes{
		PublicPaths: []string{
			"/",
			"/about",
			"/contact",
			"/services",
			"/auth/signin",
			"/auth/signup",
			"/pending",
			"/rejected",
		},
		PublicPrefixes: []string{
			"/assets/",
			"/static/",
		},
		ServiceDetailPrefix: "/services/",
		MessagingPrefix:     "/dashboard/messages",
		AdminPrefix:         "/admin",
		DashboardPath:       "/dashboard",
		AdminDashboardPath:  "/admin/dashboard",
		SignInPath:          "/auth/signin",
		PendingPath:         "/pending",
		RejectedPath:        "/rejected",
		UnauthorizedPath:    "/unauthorized",
	}
}
