package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/access"
	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
)

// RequireCapabilityMiddleware возвращает HTTP middleware, пропускающее
// только роли, обладающие требуемым правом из таблицы прав.
// Неизвестная роль получает пустой набор прав и отклоняется.
func RequireCapabilityMiddleware(log *slog.Logger, allowed func(access.Capabilities) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(Role).(string)
			if !allowed(access.CapabilitiesFor(role)) {
				log.Error("capability denied", slog.String("role", role), slog.String("path", r.URL.Path))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnlyMiddleware возвращает HTTP middleware административного
// раздела: требуется право управления пользователями.
func AdminOnlyMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return RequireCapabilityMiddleware(log, func(c access.Capabilities) bool { return c.ManageUsers })
}
