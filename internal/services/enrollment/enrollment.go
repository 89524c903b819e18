// Package services содержит бизнес-логику управления записями на услуги.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
	sessionservice "github.com/magabrotheeeer/mentor-platform/internal/services/session"
)

// EnrollmentRepository определяет методы для работы с записями в хранилище.
type EnrollmentRepository interface {
	// CreateEnrollment добавляет новую запись и возвращает её ID.
	CreateEnrollment(ctx context.Context, enrollment models.Enrollment) (int, error)
	// ReadEnrollment возвращает запись по ID.
	ReadEnrollment(ctx context.Context, id int) (*models.Enrollment, error)
	// ListEnrollments возвращает записи пользователя с пагинацией.
	ListEnrollments(ctx context.Context, userUID string, limit, offset int) ([]*models.Enrollment, error)
	// ListAllEnrollments возвращает записи всех пользователей с пагинацией.
	ListAllEnrollments(ctx context.Context, limit, offset int) ([]*models.Enrollment, error)
	// UpdateEnrollmentStatus меняет статус записи.
	UpdateEnrollmentStatus(ctx context.Context, id int, status string) (int, error)
}

// Reconciler сверяет статус клиентской сессии после изменения записей.
type Reconciler interface {
	ReconcileUser(ctx context.Context, userUID string) (*sessionservice.ReconcileResult, error)
}

// EnrollmentService реализует бизнес-логику работы с записями на услуги.
type EnrollmentService struct {
	repo       EnrollmentRepository
	reconciler Reconciler
	log        *slog.Logger
}

// NewEnrollmentService создает новый экземпляр EnrollmentService.
func NewEnrollmentService(repo EnrollmentRepository, reconciler Reconciler, log *slog.Logger) *EnrollmentService {
	return &EnrollmentService{
		repo:       repo,
		reconciler: reconciler,
		log:        log,
	}
}

// Create оформляет запись пользователя на услугу и сразу сверяет статус
// его сессии: новая действующая запись активирует доступ без ожидания
// планового прохода.
func (s *EnrollmentService) Create(ctx context.Context, req models.DummyEnrollment) (int, error) {
	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		parsed, err := time.Parse("02-01-2006", req.ExpiresAt)
		if err != nil {
			return 0, fmt.Errorf("invalid expires date: %w", err)
		}
		if !parsed.After(time.Now()) {
			return 0, fmt.Errorf("enrollment expires date must be in the future")
		}
		expiresAt = &parsed
	}

	enrollment := models.Enrollment{
		UserUID:        req.UserUID,
		ServiceID:      req.ServiceID,
		Status:         models.EnrollmentActive,
		EnrolledAt:     time.Now(),
		ExpiresAt:      expiresAt,
		HoursRemaining: req.HoursRemaining,
	}

	id, err := s.repo.CreateEnrollment(ctx, enrollment)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new enrollment", slog.Int("id", id), slog.String("user_uid", req.UserUID))

	if _, err := s.reconciler.ReconcileUser(ctx, req.UserUID); err != nil {
		s.log.Warn("failed to reconcile session after enrollment", slog.String("user_uid", req.UserUID), slog.Any("err", err))
	}
	return id, nil
}

// List возвращает записи в зависимости от роли пользователя.
func (s *EnrollmentService) List(ctx context.Context, userUID, role string, limit, offset int) ([]*models.Enrollment, error) {
	if role == models.RoleAdmin {
		return s.repo.ListAllEnrollments(ctx, limit, offset)
	}
	return s.repo.ListEnrollments(ctx, userUID, limit, offset)
}

// Cancel отменяет запись и сверяет статус сессии владельца: отменённая
// запись перестаёт удерживать сессию активной, а плановый проход
// отменённые (не просроченные) записи не видит.
func (s *EnrollmentService) Cancel(ctx context.Context, id int) (int, error) {
	enrollment, err := s.repo.ReadEnrollment(ctx, id)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.UpdateEnrollmentStatus(ctx, id, models.EnrollmentCancelled)
	if err != nil {
		return 0, err
	}
	s.log.Info("cancelled enrollment", slog.Int("id", id))

	if _, err := s.reconciler.ReconcileUser(ctx, enrollment.UserUID); err != nil {
		s.log.Warn("failed to reconcile session after cancel", slog.String("user_uid", enrollment.UserUID), slog.Any("err", err))
	}
	return count, nil
}

// Read возвращает запись по ID.
func (s *EnrollmentService) Read(ctx context.Context, id int) (*models.Enrollment, error) {
	return s.repo.ReadEnrollment(ctx, id)
}
