// Package send реализует HTTP-обработчик постановки кампании в очередь.
//
// На каждого подтверждённого клиента публикуется отдельное письмо;
// фактическая отправка выполняется отдельным процессом-отправителем.
package send

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
)

// Handler управляет HTTP-запросами на постановку кампаний в очередь.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики постановки кампании в очередь.
type Service interface {
	Send(ctx context.Context, campaignID string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отправить кампанию
// @Description Ставит письма кампании в очередь для всех подтверждённых клиентов.
// @Tags Newsletters
// @Produce  json
// @Param id path string true "ID кампании"
// @Success 200 {object} map[string]any "Количество писем в очереди"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/newsletters/{id}/send [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newsletter.send"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	campaignID := chi.URLParam(r, "id")
	if campaignID == "" {
		log.Error("missing id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing id in url"))
		return
	}

	queued, err := h.service.Send(r.Context(), campaignID)
	if err != nil {
		log.Error("failed to send campaign", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not send campaign"))
		return
	}

	log.Info("campaign queued", slog.String("id", campaignID), slog.Int("letters", queued))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"queued_letters": queued,
	}))
}
