// Package mentorplatform предоставляет маршруты основного приложения.
package mentorplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/mentor-platform/internal/access"
	"github.com/magabrotheeeer/mentor-platform/internal/cache"
	"github.com/magabrotheeeer/mentor-platform/internal/config"
	confirmuserhandler "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/admin/confirmuser"
	pendingusershandler "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/admin/pendingusers"
	rejectuserhandler "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/admin/rejectuser"
	statshandler "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/admin/stats"
	suspenduserhandler "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/admin/suspenduser"
	"github.com/magabrotheeeer/mentor-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/mentor-platform/internal/http/handlers/auth/register"
	conversationlist "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/conversation/list"
	conversationsend "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/conversation/send"
	enrollmentcancel "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/enrollment/cancel"
	enrollmentcreate "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/enrollment/create"
	enrollmentlist "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/enrollment/list"
	"github.com/magabrotheeeer/mentor-platform/internal/http/handlers/health"
	meetingcomplete "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/meeting/complete"
	meetingcreate "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/meeting/create"
	meetinglist "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/meeting/list"
	newslettercreate "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/newsletter/create"
	newslettersend "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/newsletter/send"
	"github.com/magabrotheeeer/mentor-platform/internal/http/handlers/pages"
	roadmapcreate "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/roadmap/create"
	roadmaplist "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/roadmap/list"
	roadmapmilestone "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/roadmap/milestone"
	servicecreate "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/service/create"
	servicelist "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/service/list"
	serviceread "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/service/read"
	serviceremove "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/service/remove"
	serviceupdate "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/service/update"
	sessionreconcile "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/session/reconcile"
	sessionsweep "github.com/magabrotheeeer/mentor-platform/internal/http/handlers/session/sweep"
	"github.com/magabrotheeeer/mentor-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/jwt"
	adminservice "github.com/magabrotheeeer/mentor-platform/internal/services/admin"
	authservice "github.com/magabrotheeeer/mentor-platform/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/mentor-platform/internal/services/catalog"
	conversationservice "github.com/magabrotheeeer/mentor-platform/internal/services/conversation"
	enrollmentservice "github.com/magabrotheeeer/mentor-platform/internal/services/enrollment"
	meetingservice "github.com/magabrotheeeer/mentor-platform/internal/services/meeting"
	newsletterservice "github.com/magabrotheeeer/mentor-platform/internal/services/newsletter"
	roadmapservice "github.com/magabrotheeeer/mentor-platform/internal/services/roadmap"
	sessionservice "github.com/magabrotheeeer/mentor-platform/internal/services/session"
	statsservice "github.com/magabrotheeeer/mentor-platform/internal/services/stats"
	"github.com/magabrotheeeer/mentor-platform/internal/storage/repository"
)

// Services собирает бизнес-сервисы, которые обслуживают маршруты.
type Services struct {
	Auth         *authservice.AuthService
	Catalog      *catalogservice.CatalogService
	Enrollment   *enrollmentservice.EnrollmentService
	Meeting      *meetingservice.MeetingService
	Conversation *conversationservice.ConversationService
	Roadmap      *roadmapservice.RoadmapService
	Admin        *adminservice.AdminService
	Stats        *statsservice.StatsService
	Newsletter   *newsletterservice.NewsletterService
	Session      *sessionservice.SessionService
	Storage      *repository.Storage
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, cacheRedis *cache.Cache, jwtMaker jwt.Maker, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, s.Storage).ServeHTTP)
		r.Get("/services", servicelist.New(logger, s.Catalog).ServeHTTP)
		r.Get("/services/{id}", serviceread.New(logger, s.Catalog).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(cacheRedis, cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window, logger))

			r.Get("/enrollments", enrollmentlist.New(logger, s.Enrollment).ServeHTTP)
			r.Post("/meetings", meetingcreate.New(logger, s.Meeting).ServeHTTP)
			r.Get("/meetings", meetinglist.New(logger, s.Meeting).ServeHTTP)
			r.Post("/dashboard/messages", conversationsend.New(logger, s.Conversation).ServeHTTP)
			r.Get("/dashboard/messages/{id}", conversationlist.New(logger, s.Conversation).ServeHTTP)
			r.Get("/dashboard/roadmaps/{enrollment_id}", roadmaplist.New(logger, s.Roadmap).ServeHTTP)

			// Административный раздел: доступ управляется таблицей прав ролей.
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))

				r.Get("/users/pending", pendingusershandler.New(logger, s.Admin).ServeHTTP)
				r.Post("/users/{uid}/confirm", confirmuserhandler.New(logger, s.Admin).ServeHTTP)
				r.Post("/users/{uid}/reject", rejectuserhandler.New(logger, s.Admin).ServeHTTP)
				suspendHandler := suspenduserhandler.New(logger, s.Admin)
				r.Post("/users/{uid}/suspend", suspendHandler.Suspend)
				r.Post("/users/{uid}/unsuspend", suspendHandler.Unsuspend)

				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.RequireCapabilityMiddleware(logger, func(c access.Capabilities) bool { return c.ManageCatalog }))
					r.Post("/services", servicecreate.New(logger, s.Catalog).ServeHTTP)
					r.Put("/services/{id}", serviceupdate.New(logger, s.Catalog).ServeHTTP)
					r.Delete("/services/{id}", serviceremove.New(logger, s.Catalog).ServeHTTP)
				})

				r.Post("/enrollments", enrollmentcreate.New(logger, s.Enrollment).ServeHTTP)
				r.Post("/enrollments/{id}/cancel", enrollmentcancel.New(logger, s.Enrollment).ServeHTTP)

				r.Post("/meetings/{id}/complete", meetingcomplete.New(logger, s.Meeting).ServeHTTP)

				r.Post("/messages/{client_uid}", conversationsend.New(logger, s.Conversation).ServeHTTP)

				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.RequireCapabilityMiddleware(logger, func(c access.Capabilities) bool { return c.ManageRoadmaps }))
					r.Post("/roadmaps", roadmapcreate.New(logger, s.Roadmap).ServeHTTP)
					r.Patch("/milestones/{id}", roadmapmilestone.New(logger, s.Roadmap).ServeHTTP)
				})

				r.Get("/stats", statshandler.New(logger, s.Stats).ServeHTTP)

				r.Post("/sessions/{uid}/reconcile", sessionreconcile.New(logger, s.Session).ServeHTTP)
				r.Post("/sessions/sweep", sessionsweep.New(logger, s.Session).ServeHTTP)

				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.RequireCapabilityMiddleware(logger, func(c access.Capabilities) bool { return c.SendNewsletters }))
					r.Post("/newsletters", newslettercreate.New(logger, s.Newsletter).ServeHTTP)
					r.Post("/newsletters/{id}/send", newslettersend.New(logger, s.Newsletter).ServeHTTP)
				})
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Страницы веб-интерфейса проходят через шлюз доступа: публичные пути
	// открыты всем, остальные требуют токен и состояние аккаунта.
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.AccessGateMiddleware(access.DefaultRoutes(), jwtMaker, logger))
		r.Get("/*", pages.New(logger, "./static").ServeHTTP)
	})
}
