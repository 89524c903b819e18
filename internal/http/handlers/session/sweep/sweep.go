// Package sweep реализует HTTP-обработчик ручного запуска прохода по
// пользователям с истекшими записями.
package sweep

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	services "github.com/magabrotheeeer/mentor-platform/internal/services/session"
)

// Handler управляет HTTP-запросами ручного запуска прохода.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс прохода по истекшим записям.
type Service interface {
	SweepExpired(ctx context.Context) (*services.SweepResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Запустить проход по истекшим записям
// @Description Деактивирует сессии пользователей, оставшихся без актуальных записей. Ошибка по одному пользователю не останавливает проход.
// @Tags Sessions
// @Produce  json
// @Success 200 {object} map[string]any "Итоги прохода"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/sessions/sweep [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.sweep"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.SweepExpired(r.Context())
	if err != nil {
		log.Error("failed to sweep expired enrollments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sweep expired enrollments"))
		return
	}

	log.Info("sweep finished",
		slog.Int("processed", res.ProcessedUsers),
		slog.Int("deactivated", res.Deactivated),
		slog.Int("errors", len(res.Errors)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"result": res,
	}))
}
