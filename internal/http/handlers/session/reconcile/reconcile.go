// Package reconcile реализует HTTP-обработчик ручного согласования
// клиентской сессии пользователя с его записями на услуги.
package reconcile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	services "github.com/magabrotheeeer/mentor-platform/internal/services/session"
)

// Handler управляет HTTP-запросами ручного согласования сессий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс согласования сессии.
type Service interface {
	ReconcileUser(ctx context.Context, userUID string) (*services.ReconcileResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Согласовать сессию пользователя
// @Description Сверяет статус клиентской сессии с актуальными записями пользователя.
// @Tags Sessions
// @Produce  json
// @Param uid path string true "UID пользователя"
// @Success 200 {object} map[string]any "Результат согласования"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/sessions/{uid}/reconcile [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.reconcile"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "uid")
	if userUID == "" {
		log.Error("missing uid in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing uid in url"))
		return
	}

	res, err := h.service.ReconcileUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to reconcile session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reconcile session"))
		return
	}

	log.Info("session reconciled",
		slog.String("user_uid", userUID),
		slog.String("action", res.Action))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"result": res,
	}))
}
