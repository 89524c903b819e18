package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
)

// WindowCounter считает запросы в пределах временного окна.
// Счётчик общий для всех экземпляров приложения.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitMiddleware возвращает HTTP middleware, ограничивающее число
// запросов пользователя в скользящем окне. Анонимные запросы считаются
// по адресу клиента. При недоступности счётчика запрос пропускается.
func RateLimitMiddleware(counter WindowCounter, requestsPerWindow int, window time.Duration, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := r.Context().Value(UserUID).(string)
			if !ok || key == "" {
				key = r.RemoteAddr
			}

			count, err := counter.IncrWindow(r.Context(), "ratelimit:"+key, window)
			if err != nil {
				log.Error("rate limit counter unavailable", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(requestsPerWindow) {
				log.Error("too many requests", slog.String("key", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
