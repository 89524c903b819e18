package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
	sessionservice "github.com/magabrotheeeer/mentor-platform/internal/services/session"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ConfirmUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) RejectUser(ctx context.Context, userUID, reason string) (int, error) {
	args := m.Called(ctx, userUID, reason)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListPendingUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *RepoMock) SetUserSessionStatus(ctx context.Context, userUID, status string,
	activatedAt *time.Time, activatedBy *string) (int, error) {
	args := m.Called(ctx, userUID, status, activatedAt, activatedBy)
	return args.Int(0), args.Error(1)
}

type ReconcilerMock struct{ mock.Mock }

func (m *ReconcilerMock) ReconcileUser(ctx context.Context, userUID string) (*sessionservice.ReconcileResult, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessionservice.ReconcileResult), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAdminService_Confirm(t *testing.T) {
	const uid = "5c6f2cbb-1f0e-4b3a-9f6d-2d8f3f1c0a11"

	t.Run("успешное подтверждение", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ConfirmUser", mock.Anything, uid).Return(1, nil).Once()

		svc := NewAdminService(repo, new(ReconcilerMock), newNoopLogger())
		count, err := svc.Confirm(context.Background(), uid)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		repo.AssertExpectations(t)
	})

	t.Run("повторное подтверждение отклонённого аккаунта проходит", func(t *testing.T) {
		repo := new(RepoMock)
		// хранилище само очищает rejection_reason, сервис путь не разветвляет
		repo.On("ConfirmUser", mock.Anything, uid).Return(1, nil).Once()

		svc := NewAdminService(repo, new(ReconcilerMock), newNoopLogger())
		count, err := svc.Confirm(context.Background(), uid)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("ошибка хранилища пробрасывается", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ConfirmUser", mock.Anything, uid).Return(0, errors.New("connection refused")).Once()

		svc := NewAdminService(repo, new(ReconcilerMock), newNoopLogger())
		_, err := svc.Confirm(context.Background(), uid)
		require.Error(t, err)
	})
}

func TestAdminService_Reject(t *testing.T) {
	const uid = "5c6f2cbb-1f0e-4b3a-9f6d-2d8f3f1c0a11"

	repo := new(RepoMock)
	repo.On("RejectUser", mock.Anything, uid, "incomplete profile").Return(1, nil).Once()

	svc := NewAdminService(repo, new(ReconcilerMock), newNoopLogger())
	count, err := svc.Reject(context.Background(), uid, "incomplete profile")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
}

func TestAdminService_Suspend(t *testing.T) {
	const uid = "5c6f2cbb-1f0e-4b3a-9f6d-2d8f3f1c0a11"
	const adminUID = "9a1b3c5d-0000-4000-8000-000000000001"
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	repo.On("SetUserSessionStatus", mock.Anything, uid, models.SessionSuspended,
		mock.MatchedBy(func(ts *time.Time) bool { return ts != nil && ts.Equal(now) }),
		mock.MatchedBy(func(actor *string) bool { return actor != nil && *actor == adminUID })).
		Return(1, nil).Once()

	svc := NewAdminService(repo, new(ReconcilerMock), newNoopLogger())
	svc.now = func() time.Time { return now }

	count, err := svc.Suspend(context.Background(), uid, adminUID)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
}

func TestAdminService_Unsuspend(t *testing.T) {
	const uid = "5c6f2cbb-1f0e-4b3a-9f6d-2d8f3f1c0a11"
	const adminUID = "9a1b3c5d-0000-4000-8000-000000000001"

	t.Run("снятие приостановки запускает сверку", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("SetUserSessionStatus", mock.Anything, uid, models.SessionInactive,
			(*time.Time)(nil), (*string)(nil)).Return(1, nil).Once()

		reconciler := new(ReconcilerMock)
		reconciler.On("ReconcileUser", mock.Anything, uid).
			Return(&sessionservice.ReconcileResult{
				Action:            sessionservice.ActionActivated,
				Status:            models.SessionActive,
				ActiveEnrollments: 1,
			}, nil).Once()

		svc := NewAdminService(repo, reconciler, newNoopLogger())
		res, err := svc.Unsuspend(context.Background(), uid, adminUID)

		require.NoError(t, err)
		assert.Equal(t, sessionservice.ActionActivated, res.Action)
		assert.Equal(t, models.SessionActive, res.Status)
		repo.AssertExpectations(t)
		reconciler.AssertExpectations(t)
	})

	t.Run("без актуальных записей сессия остаётся inactive", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("SetUserSessionStatus", mock.Anything, uid, models.SessionInactive,
			(*time.Time)(nil), (*string)(nil)).Return(1, nil).Once()

		reconciler := new(ReconcilerMock)
		reconciler.On("ReconcileUser", mock.Anything, uid).
			Return(&sessionservice.ReconcileResult{
				Action: sessionservice.ActionNoChange,
				Status: models.SessionInactive,
			}, nil).Once()

		svc := NewAdminService(repo, reconciler, newNoopLogger())
		res, err := svc.Unsuspend(context.Background(), uid, adminUID)

		require.NoError(t, err)
		assert.Equal(t, sessionservice.ActionNoChange, res.Action)
	})

	t.Run("ошибка сверки пробрасывается", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("SetUserSessionStatus", mock.Anything, uid, models.SessionInactive,
			(*time.Time)(nil), (*string)(nil)).Return(1, nil).Once()

		reconciler := new(ReconcilerMock)
		reconciler.On("ReconcileUser", mock.Anything, uid).
			Return(nil, errors.New("connection refused")).Once()

		svc := NewAdminService(repo, reconciler, newNoopLogger())
		_, err := svc.Unsuspend(context.Background(), uid, adminUID)
		require.Error(t, err)
	})
}
