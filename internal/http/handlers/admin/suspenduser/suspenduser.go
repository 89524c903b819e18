// Package suspenduser реализует HTTP-обработчики приостановки клиентской
// сессии и снятия приостановки.
//
// Приостановленную сессию плановая реконсиляция не трогает; снятие
// приостановки сразу согласует сессию с актуальными записями.
package suspenduser

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	sessionservice "github.com/magabrotheeeer/mentor-platform/internal/services/session"
)

// Handler управляет HTTP-запросами приостановки сессий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики приостановки сессий.
type Service interface {
	Suspend(ctx context.Context, userUID, adminUID string) (int, error)
	Unsuspend(ctx context.Context, userUID, adminUID string) (*sessionservice.ReconcileResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// Suspend godoc
// @Summary Приостановить клиентскую сессию
// @Description Переводит сессию в suspended. Плановая реконсиляция её не меняет.
// @Tags Admin
// @Produce  json
// @Param uid path string true "UID пользователя"
// @Success 200 {object} map[string]any "Количество обновленных записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users/{uid}/suspend [post]
func (h *Handler) Suspend(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.suspenduser"
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

	adminUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || adminUID == "" {
		log.Error("admin uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	count, err := h.service.Suspend(r.Context(), userUID, adminUID)
	if err != nil {
		log.Error("failed to suspend session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not suspend session"))
		return
	}

	log.Info("success to suspend session", slog.String("user_uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"suspended_count": count,
	}))
}

// Unsuspend godoc
// @Summary Снять приостановку сессии
// @Description Возвращает сессию в inactive и сразу согласует её с записями пользователя.
// @Tags Admin
// @Produce  json
// @Param uid path string true "UID пользователя"
// @Success 200 {object} map[string]any "Результат согласования"
// @Failure 400 {object} response.ErrorResponse "Некорректный UID"
// @Failure 401 {object} response.ErrorResponse "Администратор не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users/{uid}/unsuspend [post]
func (h *Handler) Unsuspend(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.unsuspenduser"
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

	adminUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || adminUID == "" {
		log.Error("admin uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Unsuspend(r.Context(), userUID, adminUID)
	if err != nil {
		log.Error("failed to unsuspend session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not unsuspend session"))
		return
	}

	log.Info("success to unsuspend session",
		slog.String("user_uid", userUID),
		slog.String("action", res.Action))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"result": res,
	}))
}
