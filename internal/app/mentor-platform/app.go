// Package mentorplatform собирает основное веб-приложение платформы:
// хранилище, кеш, брокер рассылок, бизнес-сервисы и HTTP-сервер.
package mentorplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/mentor-platform/internal/cache"
	"github.com/magabrotheeeer/mentor-platform/internal/config"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/mentor-platform/internal/migrations"
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

// App представляет основное веб-приложение платформы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New создает новый экземпляр приложения: подключает зависимости,
// прогоняет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.AddressRabbit, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.ConnectDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNewsletterQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	sessionService := sessionservice.NewSessionService(db, logger)
	authService := authservice.NewAuthService(db, jwtMaker)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	enrollmentService := enrollmentservice.NewEnrollmentService(db, sessionService, logger)
	meetingService := meetingservice.NewMeetingService(db, sessionService, logger)
	conversationService := conversationservice.NewConversationService(db, logger)
	roadmapService := roadmapservice.NewRoadmapService(db, logger)
	adminService := adminservice.NewAdminService(db, sessionService, logger)
	statsService := statsservice.NewStatsService(db)
	newsletterService := newsletterservice.NewNewsletterService(db, rabbitmq.NewCampaignPublisher(ch), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, cacheRedis, jwtMaker, &Services{
		Auth:         authService,
		Catalog:      catalogService,
		Enrollment:   enrollmentService,
		Meeting:      meetingService,
		Conversation: conversationService,
		Roadmap:      roadmapService,
		Admin:        adminService,
		Stats:        statsService,
		Newsletter:   newsletterService,
		Session:      sessionService,
		Storage:      db,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
