// Package list реализует HTTP-обработчик чтения дорожной карты записи.
//
// Клиент видит только карту собственной записи, администратор — любую.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/mentor-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/mentor-platform/internal/http/response"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// Handler обрабатывает запросы дорожной карты записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения дорожной карты.
type Service interface {
	List(ctx context.Context, requesterUID, role string, enrollmentID int) (*models.Roadmap, []*models.Milestone, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Дорожная карта записи
// @Description Возвращает план развития и вехи для записи на услугу.
// @Tags Roadmaps
// @Produce  json
// @Param enrollment_id path int true "ID записи"
// @Success 200 {object} map[string]any "Дорожная карта с вехами"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/roadmaps/{enrollment_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.roadmap.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	enrollmentID, err := strconv.Atoi(chi.URLParam(r, "enrollment_id"))
	if err != nil {
		log.Error("failed to decode enrollment_id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode enrollment_id from url"))
		return
	}

	requesterUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || requesterUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	roadmap, milestones, err := h.service.List(r.Context(), requesterUID, role, enrollmentID)
	if err != nil {
		log.Error("failed to read roadmap", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read roadmap"))
		return
	}

	log.Info("read roadmap", "milestones", len(milestones))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"roadmap":    roadmap,
		"milestones": milestones,
	}))
}
