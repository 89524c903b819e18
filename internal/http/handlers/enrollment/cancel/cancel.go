// Package cancel реализует HTTP-обработчик отмены записи на услугу.
//
// После отмены сервис согласует клиентскую сессию владельца записи:
// потеря последней актуальной записи деактивирует сессию.
package cancel

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
)

// Handler управляет HTTP-запросами на отмену записей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отмены записи.
type Service interface {
	Cancel(ctx context.Context, id int) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить запись на услугу
// @Description Переводит запись в статус cancelled и согласует сессию владельца. Доступно только администратору.
// @Tags Enrollments
// @Produce  json
// @Param id path int true "ID записи"
// @Success 200 {object} map[string]any "Количество обновленных записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/enrollments/{id}/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.cancel"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	count, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		log.Error("failed to cancel enrollment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not cancel enrollment"))
		return
	}

	log.Info("success to cancel enrollment", slog.Int("count", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"cancelled_count": count,
	}))
}
