// Package complete реализует HTTP-обработчик завершения встречи.
//
// Завершение атомарно списывает часы с тарифицируемой записи и
// согласует клиентскую сессию владельца.
package complete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	services "github.com/magabrotheeeer/mentor-platform/internal/services/meeting"
)

// Handler управляет HTTP-запросами на завершение встреч.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики завершения встречи.
type Service interface {
	Complete(ctx context.Context, id int) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Завершить встречу
// @Description Отмечает встречу завершенной и списывает часы с записи. Доступно только администратору.
// @Tags Meetings
// @Produce  json
// @Param id path int true "ID встречи"
// @Success 200 {object} map[string]any "Количество обновленных записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 409 {object} response.ErrorResponse "Недостаточно часов на записи"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/meetings/{id}/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meeting.complete"
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

	count, err := h.service.Complete(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotEnoughHours) {
			log.Error("not enough hours remaining", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("not enough hours remaining"))
			return
		}
		log.Error("failed to complete meeting", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not complete meeting"))
		return
	}

	log.Info("success to complete meeting", slog.Int("count", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"completed_count": count,
	}))
}
