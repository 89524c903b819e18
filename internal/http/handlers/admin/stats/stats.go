// Package stats реализует HTTP-обработчик сводки для админ-панели.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	services "github.com/magabrotheeeer/mentor-platform/internal/services/stats"
)

// Handler обрабатывает запросы сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	Collect(ctx context.Context) (*services.Dashboard, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка админ-панели
// @Description Возвращает агрегаты по пользователям, записям, встречам и кампаниям.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Сводка"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Collect(r.Context())
	if err != nil {
		log.Error("failed to collect stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to collect stats"))
		return
	}

	log.Info("stats collected")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": res,
	}))
}
