// Package services содержит бизнес-логику администрирования аккаунтов:
// подтверждение и отклонение регистраций, приостановку клиентских сессий.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
	sessionservice "github.com/magabrotheeeer/mentor-platform/internal/services/session"
)

// AdminRepository определяет методы администрирования аккаунтов в хранилище.
type AdminRepository interface {
	// ConfirmUser подтверждает аккаунт и очищает причину отклонения.
	ConfirmUser(ctx context.Context, userUID string) (int, error)
	// RejectUser отклоняет аккаунт с указанием причины.
	RejectUser(ctx context.Context, userUID, reason string) (int, error)
	// ListPendingUsers возвращает аккаунты, ожидающие решения.
	ListPendingUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// SetUserSessionStatus выставляет статус сессии безусловно.
	SetUserSessionStatus(ctx context.Context, userUID, status string,
		activatedAt *time.Time, activatedBy *string) (int, error)
}

// Reconciler согласует клиентскую сессию пользователя с его записями.
type Reconciler interface {
	ReconcileUser(ctx context.Context, userUID string) (*sessionservice.ReconcileResult, error)
}

// AdminService реализует административные операции над аккаунтами.
type AdminService struct {
	repo       AdminRepository
	reconciler Reconciler
	log        *slog.Logger
	now        func() time.Time
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo AdminRepository, reconciler Reconciler, log *slog.Logger) *AdminService {
	return &AdminService{
		repo:       repo,
		reconciler: reconciler,
		log:        log,
		now:        time.Now,
	}
}

// Confirm подтверждает аккаунт пользователя. Причина отклонения всегда
// очищается, повторное подтверждение ранее отклонённого аккаунта
// проходит по тому же пути.
func (s *AdminService) Confirm(ctx context.Context, userUID string) (int, error) {
	count, err := s.repo.ConfirmUser(ctx, userUID)
	if err != nil {
		return 0, err
	}
	s.log.Info("user confirmed", slog.String("user_uid", userUID))
	return count, nil
}

// Reject отклоняет аккаунт с причиной. Отклонение возможно только для
// неподтверждённого аккаунта, что гарантирует ограничение в хранилище.
func (s *AdminService) Reject(ctx context.Context, userUID, reason string) (int, error) {
	count, err := s.repo.RejectUser(ctx, userUID, reason)
	if err != nil {
		return 0, err
	}
	s.log.Info("user rejected", slog.String("user_uid", userUID), slog.String("reason", reason))
	return count, nil
}

// ListPending возвращает аккаунты, ожидающие решения администратора.
func (s *AdminService) ListPending(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListPendingUsers(ctx, limit, offset)
}

// Suspend приостанавливает клиентскую сессию пользователя. Приостановленную
// сессию реконсиляция не трогает, снять её может только администратор.
func (s *AdminService) Suspend(ctx context.Context, userUID, adminUID string) (int, error) {
	now := s.now()
	count, err := s.repo.SetUserSessionStatus(ctx, userUID, models.SessionSuspended, &now, &adminUID)
	if err != nil {
		return 0, err
	}
	s.log.Info("session suspended", slog.String("user_uid", userUID), slog.String("by", adminUID))
	return count, nil
}

// Unsuspend снимает приостановку: сессия переводится в inactive, после
// чего согласуется с актуальными записями пользователя.
func (s *AdminService) Unsuspend(ctx context.Context, userUID, adminUID string) (*sessionservice.ReconcileResult, error) {
	if _, err := s.repo.SetUserSessionStatus(ctx, userUID, models.SessionInactive, nil, nil); err != nil {
		return nil, err
	}
	res, err := s.reconciler.ReconcileUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	s.log.Info("session unsuspended",
		slog.String("user_uid", userUID),
		slog.String("by", adminUID),
		slog.String("action", res.Action))
	return res, nil
}
