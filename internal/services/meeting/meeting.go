// Package services содержит бизнес-логику встреч: бронирование,
// завершение со списанием часов и проверку статуса клиентской сессии.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
	sessionservice "github.com/magabrotheeeer/mentor-platform/internal/services/session"
)

// ErrSessionInactive возвращается при попытке бронирования с неактивной
// клиентской сессией. Обработчик превращает её в сообщение с просьбой
// связаться с администратором, а не в общую ошибку.
var ErrSessionInactive = errors.New("client session is not active")

// ErrNotEnoughHours возвращается, когда на тарифицируемой записи не
// осталось часов для списания.
var ErrNotEnoughHours = errors.New("not enough hours remaining")

// MeetingRepository определяет методы для работы со встречами в хранилище.
type MeetingRepository interface {
	// CreateMeeting добавляет встречу и возвращает её ID.
	CreateMeeting(ctx context.Context, meeting models.Meeting) (int, error)
	// ReadMeeting возвращает встречу по ID.
	ReadMeeting(ctx context.Context, id int) (*models.Meeting, error)
	// ListMeetings возвращает встречи пользователя с пагинацией.
	ListMeetings(ctx context.Context, userUID string, limit, offset int) ([]*models.Meeting, error)
	// UpdateMeetingStatus меняет статус встречи.
	UpdateMeetingStatus(ctx context.Context, id int, status string) (int, error)
	// ReadEnrollment возвращает запись по ID.
	ReadEnrollment(ctx context.Context, id int) (*models.Enrollment, error)
	// ConsumeEnrollmentHours атомарно списывает часы с записи.
	ConsumeEnrollmentHours(ctx context.Context, id, hours int) (int, error)
	// GetUserSessionState возвращает состояние клиентской сессии.
	GetUserSessionState(ctx context.Context, userUID string) (*models.SessionState, error)
}

// Reconciler сверяет статус клиентской сессии.
type Reconciler interface {
	ReconcileUser(ctx context.Context, userUID string) (*sessionservice.ReconcileResult, error)
}

// MeetingService реализует бизнес-логику встреч.
type MeetingService struct {
	repo       MeetingRepository
	reconciler Reconciler
	log        *slog.Logger
}

// NewMeetingService создает новый экземпляр MeetingService.
func NewMeetingService(repo MeetingRepository, reconciler Reconciler, log *slog.Logger) *MeetingService {
	return &MeetingService{
		repo:       repo,
		reconciler: reconciler,
		log:        log,
	}
}

// Create бронирует встречу в рамках записи пользователя.
// Бронирование доступно только при активной клиентской сессии и
// актуальной записи на услугу.
func (s *MeetingService) Create(ctx context.Context, userUID string, req models.DummyMeeting) (int, error) {
	state, err := s.repo.GetUserSessionState(ctx, userUID)
	if err != nil {
		return 0, err
	}
	if state.Status != models.SessionActive {
		return 0, ErrSessionInactive
	}

	enrollment, err := s.repo.ReadEnrollment(ctx, req.EnrollmentID)
	if err != nil {
		return 0, err
	}
	if enrollment.UserUID != userUID {
		return 0, fmt.Errorf("enrollment %d does not belong to user", req.EnrollmentID)
	}
	if !enrollment.IsCurrent(time.Now()) {
		return 0, fmt.Errorf("enrollment %d is not current", req.EnrollmentID)
	}

	scheduledAt, err := time.Parse("02-01-2006 15:04", req.ScheduledAt)
	if err != nil {
		return 0, fmt.Errorf("invalid scheduled date: %w", err)
	}

	meeting := models.Meeting{
		EnrollmentID:  req.EnrollmentID,
		UserUID:       userUID,
		ScheduledAt:   scheduledAt,
		DurationHours: req.DurationHours,
		Status:        models.MeetingScheduled,
		Notes:         req.Notes,
	}
	id, err := s.repo.CreateMeeting(ctx, meeting)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new meeting", slog.Int("id", id), slog.String("user_uid", userUID))
	return id, nil
}

// List возвращает встречи пользователя с пагинацией.
func (s *MeetingService) List(ctx context.Context, userUID string, limit, offset int) ([]*models.Meeting, error) {
	return s.repo.ListMeetings(ctx, userUID, limit, offset)
}

// Complete завершает встречу и атомарно списывает её длительность с
// тарифицируемой записи. Списание выполняется одним UPDATE c охранным
// условием, поэтому конкурирующие завершения не уводят остаток в минус.
// После списания сессия владельца сверяется заново.
func (s *MeetingService) Complete(ctx context.Context, id int) (int, error) {
	meeting, err := s.repo.ReadMeeting(ctx, id)
	if err != nil {
		return 0, err
	}
	if meeting.Status != models.MeetingScheduled {
		return 0, fmt.Errorf("meeting %d is not scheduled", id)
	}

	consumed, err := s.repo.ConsumeEnrollmentHours(ctx, meeting.EnrollmentID, meeting.DurationHours)
	if err != nil {
		return 0, err
	}
	if consumed == 0 {
		return 0, ErrNotEnoughHours
	}

	count, err := s.repo.UpdateMeetingStatus(ctx, id, models.MeetingCompleted)
	if err != nil {
		return 0, err
	}
	s.log.Info("completed meeting", slog.Int("id", id))

	if _, err := s.reconciler.ReconcileUser(ctx, meeting.UserUID); err != nil {
		s.log.Warn("failed to reconcile session after meeting", slog.String("user_uid", meeting.UserUID), slog.Any("err", err))
	}
	return count, nil
}
