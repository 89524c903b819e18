// Package pendingusers реализует HTTP-обработчик списка аккаунтов,
// ожидающих решения администратора.
package pendingusers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// Handler обрабатывает запросы списка ожидающих аккаунтов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка ожидающих аккаунтов.
type Service interface {
	ListPending(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Аккаунты в ожидании
// @Description Возвращает аккаунты, по которым решение ещё не принято.
// @Tags Admin
// @Produce  json
// @Param limit query int false "Максимум записей в ответе"
// @Param offset query int false "Смещение от начала списка"
// @Success 200 {object} map[string]any "Список аккаунтов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users/pending [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.pendingusers"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.service.ListPending(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list pending users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list pending users"))
		return
	}

	log.Info("list pending users", "count", len(res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"users":      res,
	}))
}
