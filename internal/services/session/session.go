// Package services содержит сборщик статуса клиентской сессии: сверку
// статуса одного пользователя с его актуальными записями на услуги и
// массовый проход по пользователям с истёкшими записями.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// Результаты сверки.
const (
	ActionActivated   = "activated"
	ActionDeactivated = "deactivated"
	ActionNoChange    = "no_change"
)

// SystemActor записывается в session_activated_by при автоматической активации.
const SystemActor = "system"

// SessionRepository определяет методы хранилища, которые нужны сборщику.
type SessionRepository interface {
	// CountCurrentEnrollments считает актуальные записи пользователя на момент now.
	CountCurrentEnrollments(ctx context.Context, userUID string, now time.Time) (int, error)
	// FindUsersWithLapsedEnrollments возвращает uid пользователей с просроченными
	// записями, хранящимися как active.
	FindUsersWithLapsedEnrollments(ctx context.Context, now time.Time) ([]string, error)
	// GetUserSessionState возвращает текущее состояние клиентской сессии.
	GetUserSessionState(ctx context.Context, userUID string) (*models.SessionState, error)
	// UpdateUserSessionStatus выполняет compare-and-set перевод статуса.
	UpdateUserSessionStatus(ctx context.Context, userUID, fromStatus, toStatus string,
		activatedAt *time.Time, activatedBy *string) (int, error)
}

// ReconcileResult — итог сверки одного пользователя.
type ReconcileResult struct {
	Action            string `json:"action"`
	Status            string `json:"session_status"`
	ActiveEnrollments int    `json:"active_enrollments"`
}

// UserError — ошибка обработки одного пользователя в массовом проходе.
type UserError struct {
	UserUID string `json:"user_uid"`
	Error   string `json:"error"`
}

// SweepResult — итог массового прохода.
type SweepResult struct {
	ProcessedUsers int         `json:"processed_users"`
	Deactivated    int         `json:"deactivated"`
	Errors         []UserError `json:"errors,omitempty"`
}

// SessionService сверяет статус клиентской сессии с актуальными записями.
type SessionService struct {
	repo SessionRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewSessionService создает новый экземпляр SessionService.
func NewSessionService(repo SessionRepository, log *slog.Logger) *SessionService {
	return &SessionService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// ReconcileUser пересчитывает статус сессии пользователя по числу его
// актуальных записей.
//
// Статус suspended не трогается никогда: это административное
// переопределение вне полномочий сборщика. Условная запись выполняется
// как compare-and-set от прочитанного статуса; проигрыш гонки
// конкурирующей сверке возвращает no_change — следующая сверка
// досчитает состояние.
func (s *SessionService) ReconcileUser(ctx context.Context, userUID string) (*ReconcileResult, error) {
	now := s.now()

	state, err := s.repo.GetUserSessionState(ctx, userUID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountCurrentEnrollments(ctx, userUID, now)
	if err != nil {
		return nil, err
	}

	if state.Status == models.SessionSuspended {
		return &ReconcileResult{Action: ActionNoChange, Status: state.Status, ActiveEnrollments: count}, nil
	}

	switch {
	case count > 0 && state.Status != models.SessionActive:
		actor := SystemActor
		updated, err := s.repo.UpdateUserSessionStatus(ctx, userUID, state.Status, models.SessionActive, &now, &actor)
		if err != nil {
			return nil, err
		}
		if updated == 0 {
			return &ReconcileResult{Action: ActionNoChange, Status: state.Status, ActiveEnrollments: count}, nil
		}
		s.log.Info("session activated", slog.String("user_uid", userUID), slog.Int("active_enrollments", count))
		return &ReconcileResult{Action: ActionActivated, Status: models.SessionActive, ActiveEnrollments: count}, nil

	case count == 0 && state.Status == models.SessionActive:
		updated, err := s.repo.UpdateUserSessionStatus(ctx, userUID, models.SessionActive, models.SessionInactive, nil, nil)
		if err != nil {
			return nil, err
		}
		if updated == 0 {
			return &ReconcileResult{Action: ActionNoChange, Status: state.Status, ActiveEnrollments: count}, nil
		}
		s.log.Info("session deactivated", slog.String("user_uid", userUID))
		return &ReconcileResult{Action: ActionDeactivated, Status: models.SessionInactive, ActiveEnrollments: count}, nil

	default:
		return &ReconcileResult{Action: ActionNoChange, Status: state.Status, ActiveEnrollments: count}, nil
	}
}

// SweepExpired выполняет массовый проход: находит пользователей с
// просроченными записями и сверяет каждого заново тем же предикатом,
// что и ReconcileUser — у пользователя могут быть другие действующие
// записи, и тогда сессия остаётся активной.
//
// Сверки независимы: ошибка одного пользователя записывается в итог
// и не прерывает проход. Поле status просроченных записей не меняется —
// истечение остаётся вычисляемым состоянием.
func (s *SessionService) SweepExpired(ctx context.Context) (*SweepResult, error) {
	sweepRunsTotal.Inc()

	uids, err := s.repo.FindUsersWithLapsedEnrollments(ctx, s.now())
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for _, uid := range uids {
		result.ProcessedUsers++
		reconcile, err := s.ReconcileUser(ctx, uid)
		if err != nil {
			s.log.Error("failed to reconcile user", slog.String("user_uid", uid), sl.Err(err))
			sweepUserErrorsTotal.Inc()
			result.Errors = append(result.Errors, UserError{UserUID: uid, Error: err.Error()})
			continue
		}
		if reconcile.Action == ActionDeactivated {
			result.Deactivated++
			sessionsDeactivatedTotal.Inc()
		}
	}

	s.log.Info("sweep finished",
		slog.Int("processed", result.ProcessedUsers),
		slog.Int("deactivated", result.Deactivated),
		slog.Int("errors", len(result.Errors)))
	return result, nil
}
