package access

import (
	"net/url"
	"strings"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// Token — данные токена сессии, которые читает шлюз.
// nil-указатель на Token означает отсутствие токена; вызывающая сторона
// обязана приводить любую ошибку проверки подписи к nil (fail closed).
type Token struct {
	Role            string // Роль пользователя
	IsConfirmed     *bool  // nil — решение по аккаунту ещё не принято
	RejectionReason string // Непустая строка — аккаунт отклонён с причиной
}

// Decision — результат работы шлюза: либо пропустить запрос,
// либо перенаправить на RedirectTo.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Evaluate принимает решение о допуске запроса к path при состоянии токена tok.
//
// Правила применяются по порядку, срабатывает первое подходящее:
//  1. путь из публичного списка или под публичным префиксом — пропустить;
//  2. страницы услуг каталога публичны всегда;
//  3. нет токена — на страницу входа с callbackUrl;
//  4. раздел сообщений доступен подтверждённым пользователям;
//  5. аккаунт не подтверждён — на /rejected при наличии причины, иначе на /pending;
//  6. админский раздел без роли admin — на /unauthorized;
//  7. администратор на общем корне кабинета — в кабинет администратора;
//  8. иначе пропустить.
func Evaluate(rt Routes, path string, tok *Token) Decision {
	for _, p := range rt.PublicPaths {
		if path == p {
			return allow()
		}
	}
	for _, prefix := range rt.PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return allow()
		}
	}
	if strings.HasPrefix(path, rt.ServiceDetailPrefix) {
		return allow()
	}

	if tok == nil {
		return redirect(SignInRedirect(rt, path))
	}

	confirmed := tok.IsConfirmed != nil && *tok.IsConfirmed
	if confirmed && strings.HasPrefix(path, rt.MessagingPrefix) {
		return allow()
	}
	if !confirmed {
		if tok.RejectionReason != "" {
			return redirect(rt.RejectedPath)
		}
		return redirect(rt.PendingPath)
	}

	if strings.HasPrefix(path, rt.AdminPrefix) && tok.Role != models.RoleAdmin {
		return redirect(rt.UnauthorizedPath)
	}
	if path == rt.DashboardPath && tok.Role == models.RoleAdmin {
		return redirect(rt.AdminDashboardPath)
	}
	return allow()
}

// SignInRedirect строит адрес страницы входа с сохранением исходного пути,
// чтобы после аутентификации пользователь вернулся туда, куда шёл.
func SignInRedirect(rt Routes, callbackPath string) string {
	return rt.SignInPath + "?callbackUrl=" + url.QueryEscape(callbackPath)
}
