// Package sweeper содержит приложение планового прохода по истекшим
// записям: по таймеру деактивирует клиентские сессии пользователей,
// оставшихся без актуальных записей.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/config"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	sessionservice "github.com/magabrotheeeer/mentor-platform/internal/services/session"
	"github.com/magabrotheeeer/mentor-platform/internal/storage/repository"
)

// App представляет приложение сборщика сессий.
type App struct {
	sessionService *sessionservice.SessionService
	interval       time.Duration
	db             *repository.Storage
	logger         *slog.Logger
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	for range 10 {
		if err := db.CheckDatabaseReady(ctx); err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения сборщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err := waitForDB(ctx, db); err != nil {
		_ = db.DB.Close()
		return nil, err
	}

	sessionService := sessionservice.NewSessionService(db, logger)

	return &App{
		sessionService: sessionService,
		interval:       cfg.SweepInterval,
		db:             db,
		logger:         logger,
	}, nil
}

// Run запускает плановый проход и блокируется до отмены контекста.
// Первый проход выполняется сразу при старте.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("shutting down sweeper service")
			_ = a.db.DB.Close()
			return nil
		case <-ticker.C:
			a.sweep(ctx)
		}
	}
}

func (a *App) sweep(ctx context.Context) {
	res, err := a.sessionService.SweepExpired(ctx)
	if err != nil {
		a.logger.Error("sweep failed", sl.Err(err))
		return
	}
	a.logger.Info("sweep finished",
		slog.Int("processed", res.ProcessedUsers),
		slog.Int("deactivated", res.Deactivated),
		slog.Int("errors", len(res.Errors)))
}
