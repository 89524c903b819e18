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
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CountCurrentEnrollments(ctx context.Context, userUID string, now time.Time) (int, error) {
	args := m.Called(ctx, userUID, now)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) FindUsersWithLapsedEnrollments(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *RepoMock) GetUserSessionState(ctx context.Context, userUID string) (*models.SessionState, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionState), args.Error(1)
}

func (m *RepoMock) UpdateUserSessionStatus(ctx context.Context, userUID, fromStatus, toStatus string,
	activatedAt *time.Time, activatedBy *string) (int, error) {
	args := m.Called(ctx, userUID, fromStatus, toStatus, activatedAt, activatedBy)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(repo *RepoMock, now time.Time) *SessionService {
	svc := NewSessionService(repo, newNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestSessionService_ReconcileUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	const uid = "5c6f2cbb-1f0e-4b3a-9f6d-2d8f3f1c0a11"

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantAction string
		wantStatus string
		wantCount  int
		wantErr    bool
	}{
		{
			name: "активная запись активирует сессию",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserSessionState", mock.Anything, uid).
					Return(&models.SessionState{Status: models.SessionInactive}, nil).Once()
				r.On("CountCurrentEnrollments", mock.Anything, uid, now).Return(2, nil).Once()
				r.On("UpdateUserSessionStatus", mock.Anything, uid, models.SessionInactive, models.SessionActive,
					mock.MatchedBy(func(ts *time.Time) bool { return ts != nil && ts.Equal(now) }),
					mock.MatchedBy(func(actor *string) bool { return actor != nil && *actor == SystemActor })).
					Return(1, nil).Once()
			},
			wantAction: ActionActivated,
			wantStatus: models.SessionActive,
			wantCount:  2,
		},
		{
			name: "нет актуальных записей — деактивация",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserSessionState", mock.Anything, uid).
					Return(&models.SessionState{Status: models.SessionActive}, nil).Once()
				r.On("CountCurrentEnrollments", mock.Anything, uid, now).Return(0, nil).Once()
				r.On("UpdateUserSessionStatus", mock.Anything, uid, models.SessionActive, models.SessionInactive,
					(*time.Time)(nil), (*string)(nil)).Return(1, nil).Once()
			},
			wantAction: ActionDeactivated,
			wantStatus: models.SessionInactive,
			wantCount:  0,
		},
		{
			name: "статус уже согласован — без изменений",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserSessionState", mock.Anything, uid).
					Return(&models.SessionState{Status: models.SessionActive}, nil).Once()
				r.On("CountCurrentEnrollments", mock.Anything, uid, now).Return(1, nil).Once()
			},
			wantAction: ActionNoChange,
			wantStatus: models.SessionActive,
			wantCount:  1,
		},
		{
			name: "suspended не трогается даже при актуальных записях",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserSessionState", mock.Anything, uid).
					Return(&models.SessionState{Status: models.SessionSuspended}, nil).Once()
				r.On("CountCurrentEnrollments", mock.Anything, uid, now).Return(3, nil).Once()
			},
			wantAction: ActionNoChange,
			wantStatus: models.SessionSuspended,
			wantCount:  3,
		},
		{
			name: "проигрыш compare-and-set гонки — без изменений",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserSessionState", mock.Anything, uid).
					Return(&models.SessionState{Status: models.SessionInactive}, nil).Once()
				r.On("CountCurrentEnrollments", mock.Anything, uid, now).Return(1, nil).Once()
				r.On("UpdateUserSessionStatus", mock.Anything, uid, models.SessionInactive, models.SessionActive,
					mock.Anything, mock.Anything).Return(0, nil).Once()
			},
			wantAction: ActionNoChange,
			wantStatus: models.SessionInactive,
			wantCount:  1,
		},
		{
			name: "ошибка хранилища пробрасывается",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserSessionState", mock.Anything, uid).
					Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := newService(repo, now)

			got, err := svc.ReconcileUser(context.Background(), uid)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, got.Action)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantCount, got.ActiveEnrollments)
			repo.AssertExpectations(t)
		})
	}
}

// Повторная сверка без изменения записей идемпотентна: второй вызов
// возвращает no_change.
func TestSessionService_ReconcileUser_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	const uid = "9a1b3c5d-0000-4000-8000-000000000001"

	repo := new(RepoMock)
	repo.On("GetUserSessionState", mock.Anything, uid).
		Return(&models.SessionState{Status: models.SessionInactive}, nil).Once()
	repo.On("CountCurrentEnrollments", mock.Anything, uid, now).Return(1, nil).Twice()
	repo.On("UpdateUserSessionStatus", mock.Anything, uid, models.SessionInactive, models.SessionActive,
		mock.Anything, mock.Anything).Return(1, nil).Once()
	// после первой сверки статус уже active
	repo.On("GetUserSessionState", mock.Anything, uid).
		Return(&models.SessionState{Status: models.SessionActive}, nil).Once()

	svc := newService(repo, now)

	first, err := svc.ReconcileUser(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, ActionActivated, first.Action)

	second, err := svc.ReconcileUser(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, ActionNoChange, second.Action)
	repo.AssertExpectations(t)
}

func TestSessionService_SweepExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("просроченная единственная запись деактивирует сессию", func(t *testing.T) {
		const uid = "11111111-0000-4000-8000-000000000001"
		repo := new(RepoMock)
		repo.On("FindUsersWithLapsedEnrollments", mock.Anything, now).Return([]string{uid}, nil).Once()
		repo.On("GetUserSessionState", mock.Anything, uid).
			Return(&models.SessionState{Status: models.SessionActive}, nil).Once()
		repo.On("CountCurrentEnrollments", mock.Anything, uid, now).Return(0, nil).Once()
		repo.On("UpdateUserSessionStatus", mock.Anything, uid, models.SessionActive, models.SessionInactive,
			(*time.Time)(nil), (*string)(nil)).Return(1, nil).Once()

		svc := newService(repo, now)
		got, err := svc.SweepExpired(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, got.ProcessedUsers)
		assert.Equal(t, 1, got.Deactivated)
		assert.Empty(t, got.Errors)
		// статус самой записи проход не трогает: UpdateEnrollmentStatus
		// в интерфейсе сборщика отсутствует, мок это гарантирует
		repo.AssertExpectations(t)
	})

	t.Run("другая действующая запись сохраняет сессию", func(t *testing.T) {
		const uid = "22222222-0000-4000-8000-000000000002"
		repo := new(RepoMock)
		repo.On("FindUsersWithLapsedEnrollments", mock.Anything, now).Return([]string{uid}, nil).Once()
		repo.On("GetUserSessionState", mock.Anything, uid).
			Return(&models.SessionState{Status: models.SessionActive}, nil).Once()
		// одна запись просрочена, но вторая, бессрочная, ещё действует
		repo.On("CountCurrentEnrollments", mock.Anything, uid, now).Return(1, nil).Once()

		svc := newService(repo, now)
		got, err := svc.SweepExpired(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, got.ProcessedUsers)
		assert.Equal(t, 0, got.Deactivated)
		assert.Empty(t, got.Errors)
		repo.AssertExpectations(t)
	})

	t.Run("ошибка одного пользователя не прерывает проход", func(t *testing.T) {
		const badUID = "33333333-0000-4000-8000-000000000003"
		const goodUID = "44444444-0000-4000-8000-000000000004"
		repo := new(RepoMock)
		repo.On("FindUsersWithLapsedEnrollments", mock.Anything, now).
			Return([]string{badUID, goodUID}, nil).Once()
		repo.On("GetUserSessionState", mock.Anything, badUID).
			Return(nil, errors.New("user not found")).Once()
		repo.On("GetUserSessionState", mock.Anything, goodUID).
			Return(&models.SessionState{Status: models.SessionActive}, nil).Once()
		repo.On("CountCurrentEnrollments", mock.Anything, goodUID, now).Return(0, nil).Once()
		repo.On("UpdateUserSessionStatus", mock.Anything, goodUID, models.SessionActive, models.SessionInactive,
			(*time.Time)(nil), (*string)(nil)).Return(1, nil).Once()

		svc := newService(repo, now)
		got, err := svc.SweepExpired(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, got.ProcessedUsers)
		assert.Equal(t, 1, got.Deactivated)
		require.Len(t, got.Errors, 1)
		assert.Equal(t, badUID, got.Errors[0].UserUID)
		repo.AssertExpectations(t)
	})

	t.Run("ошибка поиска просроченных записей фатальна", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("FindUsersWithLapsedEnrollments", mock.Anything, now).
			Return(nil, errors.New("connection refused")).Once()

		svc := newService(repo, now)
		_, err := svc.SweepExpired(context.Background())
		require.Error(t, err)
	})
}
